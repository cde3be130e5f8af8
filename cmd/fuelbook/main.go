package main

import (
	"context"
	"fmt"
	"os"

	"fuelbook/internal/cli"
	applog "fuelbook/internal/log"
	"fuelbook/internal/services"
	"fuelbook/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("FUELBOOK_LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	res := cli.OpenBackend(logger.WithComponent(applog.ComponentBackend), cfg)
	defer func() {
		if res.Cleanup != nil {
			if err := res.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}
	}()

	repo := storage.NewRepository(res.Store)
	app := &app{
		accounts: services.NewAccountService(repo),
		vehicles: services.NewVehicleService(repo),
		fuel:     services.NewFuelService(repo),
		out:      os.Stdout,
		in:       os.Stdin,
	}

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
