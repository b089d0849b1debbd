package config

import (
	"fmt"
	"time"
)

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	Host           string        `yaml:"host" env:"LEDGER_POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"LEDGER_POSTGRES_PORT" env-default:"5432"`
	User           string        `yaml:"user" env:"LEDGER_POSTGRES_USER" env-default:"postgres"`
	Password       string        `yaml:"password" env:"LEDGER_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string        `yaml:"database" env:"LEDGER_POSTGRES_DB" env-default:"finledger"`
	MinConn        int           `yaml:"min_conn" env:"LEDGER_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int           `yaml:"max_conn" env:"LEDGER_POSTGRES_MAX_CONN" env-default:"10"`
	ConnectRetries int           `yaml:"connect_retries" env:"LEDGER_POSTGRES_CONNECT_RETRIES" env-default:"5"`
	ConnectBackoff time.Duration `yaml:"connect_backoff" env:"LEDGER_POSTGRES_CONNECT_BACKOFF" env-default:"500ms"`
	MigrationsPath string        `yaml:"migrations_path" env:"LEDGER_POSTGRES_MIGRATIONS_PATH" env-default:"migrations/ledger"`
}

// GetDSN returns the libpq keyword/value connection string.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL returns the URL form used by migrations.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
