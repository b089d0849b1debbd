package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finledger/internal/ledger/domain/entities"
	"finledger/internal/ledger/ports/cache"
	"finledger/internal/ledger/ports/repositories"
	"finledger/pkg/logger"
)

const (
	balanceKeyPrefix = "balance:"
	// noSum marks a cached aggregate over zero rows.
	noSum = "null"

	msgSumCacheHit      = "balance sum served from cache"
	msgSumCacheMiss     = "balance sum cache miss"
	msgCacheReadFailed  = "balance cache read failed"
	msgCacheWriteFailed = "balance cache write failed"
	msgCacheBadValue    = "balance cache holds an unreadable value"
	msgInvalidateFailed = "balance cache invalidation failed"
)

// BalanceCachingRepository wraps an EntryRepository and caches per-user sums.
// Every write through it drops the cached sums of the affected users.
// Cache failures are logged and never fail the call.
type BalanceCachingRepository struct {
	next  repositories.EntryRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewBalanceCachingRepository decorates next with c. A zero ttl uses the cache default.
func NewBalanceCachingRepository(next repositories.EntryRepository, c cache.Cache, ttl time.Duration) repositories.EntryRepository {
	return &BalanceCachingRepository{next: next, cache: c, ttl: ttl}
}

// BalanceKey is the cache key of the sum of userID's entries of entryType.
func BalanceKey(userID int64, entryType entities.EntryType) string {
	return balanceKeyPrefix + strconv.FormatInt(userID, 10) + ":" + string(entryType)
}

func (r *BalanceCachingRepository) Create(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	created, err := r.next.Create(ctx, entry)
	if err != nil {
		return entities.Entry{}, err
	}
	r.invalidate(ctx, created.UserID)
	return created, nil
}

func (r *BalanceCachingRepository) Update(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	previous, findErr := r.next.FindByID(ctx, entry.ID)

	updated, err := r.next.Update(ctx, entry)
	if err != nil {
		return entities.Entry{}, err
	}

	if findErr == nil && previous.UserID != updated.UserID {
		r.invalidate(ctx, previous.UserID, updated.UserID)
	} else {
		r.invalidate(ctx, updated.UserID)
	}
	return updated, nil
}

func (r *BalanceCachingRepository) Delete(ctx context.Context, id int64) error {
	previous, findErr := r.next.FindByID(ctx, id)
	if findErr != nil && !errors.Is(findErr, entities.ErrEntryNotFound) {
		return findErr
	}

	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}

	if findErr == nil {
		r.invalidate(ctx, previous.UserID)
	}
	return nil
}

func (r *BalanceCachingRepository) FindByID(ctx context.Context, id int64) (entities.Entry, error) {
	return r.next.FindByID(ctx, id)
}

func (r *BalanceCachingRepository) FindByExample(ctx context.Context, filter entities.Entry) ([]entities.Entry, error) {
	return r.next.FindByExample(ctx, filter)
}

// SumValueByUserAndType serves the sum from cache when present, otherwise
// asks the wrapped repository and caches the answer.
func (r *BalanceCachingRepository) SumValueByUserAndType(ctx context.Context, userID int64, entryType entities.EntryType) (decimal.NullDecimal, error) {
	key := BalanceKey(userID, entryType)
	log := logger.Log(ctx).With(zap.String("method", "SumValueByUserAndType"), zap.String("key", key))

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
	case cached == noSum:
		log.Debug(ctx, msgSumCacheHit)
		return decimal.NullDecimal{}, nil
	case cached != "":
		sum, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			log.Debug(ctx, msgSumCacheHit)
			return decimal.NewNullDecimal(sum), nil
		}
		log.Warn(ctx, msgCacheBadValue, zap.Error(parseErr))
	default:
		log.Debug(ctx, msgSumCacheMiss)
	}

	sum, err := r.next.SumValueByUserAndType(ctx, userID, entryType)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	value := noSum
	if sum.Valid {
		value = sum.Decimal.String()
	}
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
	}

	return sum, nil
}

func (r *BalanceCachingRepository) invalidate(ctx context.Context, userIDs ...int64) {
	keys := make([]string, 0, 2*len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, BalanceKey(id, entities.EntryTypeIncome), BalanceKey(id, entities.EntryTypeExpense))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		logger.Log(ctx).Warn(ctx, msgInvalidateFailed,
			zap.Error(fmt.Errorf("users %v: %w", userIDs, err)))
	}
}
