// Package api declares the use cases exposed to the transport layer.
package api

import (
	"context"

	"github.com/shopspring/decimal"

	"finledger/internal/ledger/domain/entities"
)

// EntryUseCase manages ledger entries and balances.
type EntryUseCase interface {
	Validate(entry entities.Entry) error

	Save(ctx context.Context, entry entities.Entry) (entities.Entry, error)

	Update(ctx context.Context, entry entities.Entry) (entities.Entry, error)

	Delete(ctx context.Context, entry entities.Entry) error

	Search(ctx context.Context, filter entities.Entry) ([]entities.Entry, error)

	ChangeStatus(ctx context.Context, entry entities.Entry, status entities.EntryStatus) (entities.Entry, error)

	FindByID(ctx context.Context, id int64) (*entities.Entry, error)

	ComputeBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}
