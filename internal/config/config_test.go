package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, "data")
	}
	if cfg.UsersFile != "users.txt" {
		t.Fatalf("UsersFile = %q, want %q", cfg.UsersFile, "users.txt")
	}
	if cfg.ClinicOpen != 9*time.Hour {
		t.Fatalf("ClinicOpen = %s, want 9h", cfg.ClinicOpen)
	}
	if cfg.ClinicClose != 17*time.Hour {
		t.Fatalf("ClinicClose = %s, want 17h", cfg.ClinicClose)
	}
	if cfg.SlotDuration != 30*time.Minute {
		t.Fatalf("SlotDuration = %s, want 30m", cfg.SlotDuration)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLINICOPS_DATA_DIR", "/var/lib/clinicops")
	t.Setenv("CLINICOPS_CLINIC_OPEN", "08:30")
	t.Setenv("CLINICOPS_CLINIC_SLOT_DURATION", "15m")
	t.Setenv("CLINICOPS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DataDir != "/var/lib/clinicops" {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, "/var/lib/clinicops")
	}
	if cfg.ClinicOpen != 8*time.Hour+30*time.Minute {
		t.Fatalf("ClinicOpen = %s, want 8h30m", cfg.ClinicOpen)
	}
	if cfg.SlotDuration != 15*time.Minute {
		t.Fatalf("SlotDuration = %s, want 15m", cfg.SlotDuration)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_RejectsMalformedClock(t *testing.T) {
	t.Setenv("CLINICOPS_CLINIC_OPEN", "9am")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for malformed clinic.open")
	}
	if !strings.Contains(err.Error(), "clinic.open") {
		t.Fatalf("err = %q, want it to name clinic.open", err)
	}
}

func TestLoad_RejectsInvertedHours(t *testing.T) {
	t.Setenv("CLINICOPS_CLINIC_OPEN", "17:00")
	t.Setenv("CLINICOPS_CLINIC_CLOSE", "09:00")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error when close is before open")
	}
}
