package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DataDir            string
	UsersFile          string
	AppointmentsFile   string
	MedicationsFile    string
	ReplenishmentsFile string
	ClinicOpen         time.Duration
	ClinicClose        time.Duration
	SlotDuration       time.Duration
	LogLevel           string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLINICOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.users_file", "users.txt")
	v.SetDefault("data.appointments_file", "appointments.txt")
	v.SetDefault("data.medications_file", "medications.txt")
	v.SetDefault("data.replenishments_file", "replenishment_requests.txt")
	v.SetDefault("clinic.open", "09:00")
	v.SetDefault("clinic.close", "17:00")
	v.SetDefault("clinic.slot_duration", "30m")
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("data.dir", "CLINICOPS_DATA_DIR", "DATA_DIR")
	_ = v.BindEnv("data.users_file", "CLINICOPS_DATA_USERS_FILE")
	_ = v.BindEnv("data.appointments_file", "CLINICOPS_DATA_APPOINTMENTS_FILE")
	_ = v.BindEnv("data.medications_file", "CLINICOPS_DATA_MEDICATIONS_FILE")
	_ = v.BindEnv("data.replenishments_file", "CLINICOPS_DATA_REPLENISHMENTS_FILE")
	_ = v.BindEnv("clinic.open", "CLINICOPS_CLINIC_OPEN")
	_ = v.BindEnv("clinic.close", "CLINICOPS_CLINIC_CLOSE")
	_ = v.BindEnv("clinic.slot_duration", "CLINICOPS_CLINIC_SLOT_DURATION")
	_ = v.BindEnv("log.level", "CLINICOPS_LOG_LEVEL", "LOG_LEVEL")

	open, err := parseClock(v.GetString("clinic.open"))
	if err != nil {
		return Config{}, fmt.Errorf("clinic.open: %w", err)
	}
	closeAt, err := parseClock(v.GetString("clinic.close"))
	if err != nil {
		return Config{}, fmt.Errorf("clinic.close: %w", err)
	}
	slot, err := time.ParseDuration(v.GetString("clinic.slot_duration"))
	if err != nil {
		return Config{}, fmt.Errorf("clinic.slot_duration: %w", err)
	}
	if closeAt <= open {
		return Config{}, fmt.Errorf("clinic.close %s must be after clinic.open %s",
			v.GetString("clinic.close"), v.GetString("clinic.open"))
	}
	if slot <= 0 {
		return Config{}, fmt.Errorf("clinic.slot_duration must be positive")
	}

	return Config{
		DataDir:            v.GetString("data.dir"),
		UsersFile:          v.GetString("data.users_file"),
		AppointmentsFile:   v.GetString("data.appointments_file"),
		MedicationsFile:    v.GetString("data.medications_file"),
		ReplenishmentsFile: v.GetString("data.replenishments_file"),
		ClinicOpen:         open,
		ClinicClose:        closeAt,
		SlotDuration:       slot,
		LogLevel:           v.GetString("log.level"),
	}, nil
}

// parseClock turns an "HH:MM" wall-clock value into an offset from
// midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
