package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"clinicops/internal/config"
	"clinicops/internal/service/directory"
	"clinicops/internal/service/inventory"
	"clinicops/internal/service/scheduling"
	"clinicops/internal/store/flatfile"
	"clinicops/internal/transport/cli"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "clinicops"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "clinicops"),
	)
	slog.SetDefault(log)

	st := flatfile.New(flatfile.Config{
		Dir:                cfg.DataDir,
		UsersFile:          cfg.UsersFile,
		AppointmentsFile:   cfg.AppointmentsFile,
		MedicationsFile:    cfg.MedicationsFile,
		ReplenishmentsFile: cfg.ReplenishmentsFile,
	}, log)

	ctx := context.Background()
	if err := st.Load(ctx); err != nil {
		// Startup load failure is unrecoverable: refusing to run beats
		// silently rewriting files the operator still wants intact.
		log.Error("store load failed", slog.Any("err", err), slog.String("data_dir", cfg.DataDir))
		os.Exit(1)
	}

	hours := scheduling.Hours{
		Open:         cfg.ClinicOpen,
		Close:        cfg.ClinicClose,
		SlotDuration: cfg.SlotDuration,
	}

	root := cli.New(cli.Deps{
		Log:        log,
		Scheduling: scheduling.NewService(st, st, hours, log),
		Directory:  directory.NewService(st, log),
		Inventory:  inventory.NewService(st, st, log),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
