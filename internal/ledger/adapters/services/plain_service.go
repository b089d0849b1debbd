package services

import (
	"context"
	"crypto/subtle"

	svc "finledger/internal/ledger/ports/services"
)

// ServicePlain stores passwords as given and compares them exactly.
// It offers no protection for stored credentials; select bcrypt mode for that.
type ServicePlain struct{}

// NewPlain creates the plain password service.
func NewPlain() svc.PasswordService {
	return ServicePlain{}
}

// Hash returns password unchanged.
func (ServicePlain) Hash(_ context.Context, password string) (string, error) {
	return password, nil
}

// Verify reports whether password equals stored.
func (ServicePlain) Verify(_ context.Context, password, stored string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}
