package config

import (
	"finledger/pkg/logger"
)

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LEDGER_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LEDGER_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps Mode to a logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
