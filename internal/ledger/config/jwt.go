package config

import "time"

// JWTConfig configures access tokens.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"LEDGER_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"LEDGER_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	Issuer         string `yaml:"issuer" env:"LEDGER_JWT_ISSUER" env-default:"finledger"`
}

// GetAccessTokenTTL parses AccessTokenTTL, falling back to 15 minutes.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || duration <= 0 {
		return 15 * time.Minute
	}
	return duration
}
