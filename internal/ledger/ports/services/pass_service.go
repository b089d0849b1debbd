// Package services declares auxiliary services used by the use cases and the transport layer.
package services

import "context"

// PasswordService prepares credentials for storage and checks them.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	Verify(ctx context.Context, password, stored string) (bool, error)
}
