package api

import (
	"context"

	"finledger/internal/ledger/domain/entities"
)

// UserUseCase registers and authenticates users.
type UserUseCase interface {
	ValidateEmail(ctx context.Context, email string) error

	Create(ctx context.Context, user entities.User) (entities.User, error)

	Authenticate(ctx context.Context, email, password string) (entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)
}
