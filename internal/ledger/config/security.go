package config

import (
	"errors"
	"fmt"
)

// PasswordMode selects how user passwords are stored and compared.
type PasswordMode string

const (
	// PasswordModePlain stores passwords as given and compares them exactly.
	PasswordModePlain PasswordMode = "plain"
	// PasswordModeBcrypt stores bcrypt hashes.
	PasswordModeBcrypt PasswordMode = "bcrypt"
)

// ErrUnknownPasswordMode is returned for a mode other than plain or bcrypt.
var ErrUnknownPasswordMode = errors.New("unknown password mode")

// SecurityConfig configures credential handling.
type SecurityConfig struct {
	PasswordMode PasswordMode `yaml:"password_mode" env:"LEDGER_PASSWORD_MODE" env-default:"plain"`
	BCryptCost   int          `yaml:"bcrypt_cost" env:"LEDGER_BCRYPT_COST" env-default:"10"`
}

// Validate checks PasswordMode.
func (s *SecurityConfig) Validate() error {
	switch s.PasswordMode {
	case PasswordModePlain, PasswordModeBcrypt:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownPasswordMode, s.PasswordMode)
}
