// Package cli provides common initialization for the fuelbook command:
// env file loading, logging, configuration and backend setup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"fuelbook/internal/backend"
	"fuelbook/internal/config"
	applog "fuelbook/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and
// installs it as the default logger.
func SetupLogger(level string) *applog.Logger {
	logger := applog.New(applog.ComponentApp, applog.ParseLevel(level))
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend opens the configured key-value store.
// Returns the backend or exits the process on failure.
func OpenBackend(logger *applog.Logger, cfg *config.Config) *backend.Result {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.Logger).Open(bcfg)
	if err != nil {
		logger.Error("Failed to open backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return res
}
