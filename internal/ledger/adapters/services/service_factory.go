// Package services implements password and token services.
package services

import (
	"finledger/internal/ledger/config"
	"finledger/internal/ledger/ports/services"
)

// ServiceFactory builds the configured password and token services.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory selects the password service by sec.PasswordMode.
func NewServiceFactory(sec config.SecurityConfig, jwtCfg config.JWTConfig) *ServiceFactory {
	var passwords services.PasswordService
	switch sec.PasswordMode {
	case config.PasswordModeBcrypt:
		passwords = NewBcrypt(sec.BCryptCost)
	default:
		passwords = NewPlain()
	}

	return &ServiceFactory{
		passwordService: passwords,
		tokenService:    NewJWT(jwtCfg.SecretKey, jwtCfg.GetAccessTokenTTL(), jwtCfg.Issuer),
	}
}

// PasswordService returns the password service.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService returns the token service.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
