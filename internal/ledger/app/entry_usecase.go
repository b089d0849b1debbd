// Package app implements the ledger use cases.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finledger/internal/ledger/domain/entities"
	"finledger/internal/ledger/ports/api"
	"finledger/internal/ledger/ports/repositories"
	"finledger/pkg/logger"
)

const (
	methodSaveEntry      = "SaveEntry"
	methodUpdateEntry    = "UpdateEntry"
	methodDeleteEntry    = "DeleteEntry"
	methodSearchEntries  = "SearchEntries"
	methodChangeStatus   = "ChangeStatus"
	methodFindEntry      = "FindEntryByID"
	methodComputeBalance = "ComputeBalance"

	msgSavingEntry       = "saving entry"
	msgEntrySaved        = "entry saved"
	msgUpdatingEntry     = "updating entry"
	msgEntryUpdated      = "entry updated"
	msgDeletingEntry     = "deleting entry"
	msgEntryDeleted      = "entry deleted"
	msgEntryInvalid      = "entry rejected by validation"
	msgSearchingEntries  = "searching entries"
	msgChangingStatus    = "changing entry status"
	msgEntryNotFound     = "entry not found"
	msgComputingBalance  = "computing balance"
	msgBalanceComputed   = "balance computed"
	msgErrCreateEntry    = "failed to create entry"
	msgErrUpdateEntry    = "failed to update entry"
	msgErrDeleteEntry    = "failed to delete entry"
	msgErrSearchEntries  = "failed to search entries"
	msgErrFindEntry      = "failed to find entry"
	msgErrSumByType      = "failed to sum entries by type"
	errCtxCreatingEntry  = "creating entry"
	errCtxUpdatingEntry  = "updating entry"
	errCtxDeletingEntry  = "deleting entry"
	errCtxSearching      = "searching entries"
	errCtxFindingEntry   = "finding entry"
	errCtxSummingIncome  = "summing income"
	errCtxSummingExpense = "summing expense"
)

// EntryUseCaseImpl implements api.EntryUseCase.
type EntryUseCaseImpl struct {
	entryRepo repositories.EntryRepository
	now       func() time.Time
}

// NewEntryUseCase creates the entry service.
func NewEntryUseCase(entryRepo repositories.EntryRepository) api.EntryUseCase {
	return &EntryUseCaseImpl{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// Validate checks entry field by field and returns the first failure.
// Status is not checked.
func (u *EntryUseCaseImpl) Validate(entry entities.Entry) error {
	switch {
	case strings.TrimSpace(entry.Description) == "":
		return entities.ErrInvalidDescription
	case entry.Month < 1 || entry.Month > 12:
		return entities.ErrInvalidMonth
	case entry.Year < entities.MinYear:
		return entities.ErrInvalidYear
	case entry.UserID == 0:
		return entities.ErrUserRequired
	case !entities.ValidValue(entry.Value):
		return entities.ErrInvalidValue
	case entry.Type == "":
		return entities.ErrEntryTypeRequired
	}
	return nil
}

// Save validates and creates a new entry. Status defaults to PENDING.
func (u *EntryUseCaseImpl) Save(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSaveEntry), zap.Int64("userID", entry.UserID))
	log.Debug(ctx, msgSavingEntry)

	if entry.Persisted() {
		panic(fmt.Errorf("%w: got id %d", entities.ErrEntryIDNotAllowed, entry.ID))
	}

	if err := u.Validate(entry); err != nil {
		log.Debug(ctx, msgEntryInvalid, zap.Error(err))
		return entities.Entry{}, err
	}

	if entry.Status == "" {
		entry.Status = entities.EntryStatusPending
	}
	if entry.RegisteredAt.IsZero() {
		entry.RegisteredAt = u.now().UTC().Truncate(24 * time.Hour)
	}

	created, err := u.entryRepo.Create(ctx, entry)
	if err != nil {
		log.Error(ctx, msgErrCreateEntry, zap.Error(err))
		return entities.Entry{}, fmt.Errorf("%s: %w", errCtxCreatingEntry, err)
	}

	log.Info(ctx, msgEntrySaved, zap.Int64("entryID", created.ID))
	return created, nil
}

// Update validates and overwrites a persisted entry.
// Calling it with an entry that has no ID panics.
func (u *EntryUseCaseImpl) Update(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	mustBePersisted(entry, methodUpdateEntry)

	log := logger.Log(ctx).With(zap.String("method", methodUpdateEntry), zap.Int64("entryID", entry.ID))
	log.Debug(ctx, msgUpdatingEntry)

	if err := u.Validate(entry); err != nil {
		log.Debug(ctx, msgEntryInvalid, zap.Error(err))
		return entities.Entry{}, err
	}

	updated, err := u.entryRepo.Update(ctx, entry)
	if err != nil {
		log.Error(ctx, msgErrUpdateEntry, zap.Error(err))
		return entities.Entry{}, fmt.Errorf("%s: %w", errCtxUpdatingEntry, err)
	}

	log.Info(ctx, msgEntryUpdated, zap.String("status", string(updated.Status)))
	return updated, nil
}

// Delete removes a persisted entry. Calling it with an entry that has no ID panics.
func (u *EntryUseCaseImpl) Delete(ctx context.Context, entry entities.Entry) error {
	mustBePersisted(entry, methodDeleteEntry)

	log := logger.Log(ctx).With(zap.String("method", methodDeleteEntry), zap.Int64("entryID", entry.ID))
	log.Debug(ctx, msgDeletingEntry)

	if err := u.entryRepo.Delete(ctx, entry.ID); err != nil {
		log.Error(ctx, msgErrDeleteEntry, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingEntry, err)
	}

	log.Info(ctx, msgEntryDeleted)
	return nil
}

// Search returns the entries matching the non-zero fields of filter.
func (u *EntryUseCaseImpl) Search(ctx context.Context, filter entities.Entry) ([]entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSearchEntries), zap.Int64("userID", filter.UserID))
	log.Debug(ctx, msgSearchingEntries,
		zap.String("description", filter.Description),
		zap.Int("month", filter.Month),
		zap.Int("year", filter.Year))

	found, err := u.entryRepo.FindByExample(ctx, filter)
	if err != nil {
		log.Error(ctx, msgErrSearchEntries, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearching, err)
	}

	return found, nil
}

// ChangeStatus sets status on a copy of entry and persists it through Update.
func (u *EntryUseCaseImpl) ChangeStatus(ctx context.Context, entry entities.Entry, status entities.EntryStatus) (entities.Entry, error) {
	logger.Log(ctx).Debug(ctx, msgChangingStatus,
		zap.String("method", methodChangeStatus),
		zap.Int64("entryID", entry.ID),
		zap.String("from", string(entry.Status)),
		zap.String("to", string(status)))

	return u.Update(ctx, entry.WithStatus(status))
}

// FindByID returns nil and no error when the entry does not exist.
func (u *EntryUseCaseImpl) FindByID(ctx context.Context, id int64) (*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindEntry), zap.Int64("entryID", id))

	entry, err := u.entryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrEntryNotFound) {
			log.Debug(ctx, msgEntryNotFound)
			return nil, nil
		}
		log.Error(ctx, msgErrFindEntry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingEntry, err)
	}

	return &entry, nil
}

// ComputeBalance returns income minus expense for userID. Missing sums count as zero.
func (u *EntryUseCaseImpl) ComputeBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodComputeBalance), zap.Int64("userID", userID))
	log.Debug(ctx, msgComputingBalance)

	income, err := u.entryRepo.SumValueByUserAndType(ctx, userID, entities.EntryTypeIncome)
	if err != nil {
		log.Error(ctx, msgErrSumByType, zap.String("type", string(entities.EntryTypeIncome)), zap.Error(err))
		return decimal.Zero, fmt.Errorf("%s: %w", errCtxSummingIncome, err)
	}

	expense, err := u.entryRepo.SumValueByUserAndType(ctx, userID, entities.EntryTypeExpense)
	if err != nil {
		log.Error(ctx, msgErrSumByType, zap.String("type", string(entities.EntryTypeExpense)), zap.Error(err))
		return decimal.Zero, fmt.Errorf("%s: %w", errCtxSummingExpense, err)
	}

	balance := orZero(income).Sub(orZero(expense))

	log.Debug(ctx, msgBalanceComputed, zap.String("balance", balance.String()))
	return balance, nil
}

func orZero(sum decimal.NullDecimal) decimal.Decimal {
	if !sum.Valid {
		return decimal.Zero
	}
	return sum.Decimal
}

func mustBePersisted(entry entities.Entry, method string) {
	if !entry.Persisted() {
		panic(fmt.Errorf("%s: %w", method, entities.ErrEntryIDRequired))
	}
}
