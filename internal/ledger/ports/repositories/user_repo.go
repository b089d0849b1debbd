package repositories

import (
	"context"

	"finledger/internal/ledger/domain/entities"
)

// UserRepository stores users.
type UserRepository interface {
	Create(ctx context.Context, user entities.User) (entities.User, error)

	Update(ctx context.Context, user entities.User) (entities.User, error)

	Delete(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (entities.User, error)

	FindByExample(ctx context.Context, filter entities.User) ([]entities.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	FindByEmail(ctx context.Context, email string) (entities.User, error)
}
