// Package repositories declares the persistence gateway used by the ledger use cases.
package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"finledger/internal/ledger/domain/entities"
)

// EntryRepository stores entries.
type EntryRepository interface {
	// Create inserts entry and returns it with the generated ID.
	Create(ctx context.Context, entry entities.Entry) (entities.Entry, error)

	// Update overwrites the row identified by entry.ID.
	Update(ctx context.Context, entry entities.Entry) (entities.Entry, error)

	Delete(ctx context.Context, id int64) error

	FindByID(ctx context.Context, id int64) (entities.Entry, error)

	// FindByExample returns entries matching every non-zero field of filter.
	FindByExample(ctx context.Context, filter entities.Entry) ([]entities.Entry, error)

	// SumValueByUserAndType is not Valid when the user has no entries of entryType.
	SumValueByUserAndType(ctx context.Context, userID int64, entryType entities.EntryType) (decimal.NullDecimal, error)
}
