package config

import (
	"time"
)

// ShutdownConfig holds graceful shutdown settings.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"LEDGER_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout returns Timeout in seconds as a time.Duration.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
