package config

import (
	"fmt"
	"time"
)

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"LEDGER_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"LEDGER_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"LEDGER_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"LEDGER_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"LEDGER_HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// GetAddress returns host:port.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
