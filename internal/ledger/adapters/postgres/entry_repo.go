// Package postgres provides PostgreSQL implementations of the ledger repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finledger/internal/ledger/domain/entities"
	"finledger/internal/ledger/ports/repositories"
	"finledger/pkg/logger"
)

// PgxPoolInterface is the subset of *pgxpool.Pool the repositories use.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const (
	entryColumns = `id, description, month, year, value, user_id, type, status, registered_at`

	queryInsertEntry = `
        INSERT INTO entries (description, month, year, value, user_id, type, status, registered_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + entryColumns

	queryUpdateEntry = `
        UPDATE entries
        SET description = $2, month = $3, year = $4, value = $5, user_id = $6, type = $7, status = $8
        WHERE id = $1
        RETURNING ` + entryColumns

	queryDeleteEntry   = `DELETE FROM entries WHERE id = $1`
	querySelectEntries = `SELECT ` + entryColumns + ` FROM entries`
	queryEntryByID     = querySelectEntries + ` WHERE id = $1`
	querySumByType     = `SELECT SUM(value) FROM entries WHERE user_id = $1 AND type = $2`

	repoEntry = "entry"

	msgEntryNotFound   = "entry not found"
	msgErrCreateEntry  = "error creating entry"
	msgErrUpdateEntry  = "error updating entry"
	msgErrDeleteEntry  = "error deleting entry"
	msgErrFindEntry    = "error finding entry by id"
	msgErrSearchEntry  = "error searching entries"
	msgErrScanEntry    = "error scanning entry"
	msgErrIterateRows  = "error iterating rows"
	msgErrSumEntries   = "error summing entries"
	msgSearchingByExpl = "searching entries by example"

	errCtxCreateEntry = "error creating entry"
	errCtxUpdateEntry = "error updating entry"
	errCtxDeleteEntry = "error deleting entry"
	errCtxFindEntry   = "error querying entry by id"
	errCtxSearch      = "error searching entries"
	errCtxScanEntry   = "error scanning entry"
	errCtxIterate     = "error iterating rows"
	errCtxSum         = "error summing entries"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EntryRepository implements repositories.EntryRepository on top of Postgres.
type EntryRepository struct {
	pool PgxPoolInterface
}

// NewEntryRepository creates an entry repository backed by pool.
func NewEntryRepository(pool PgxPoolInterface) repositories.EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create inserts entry and returns it with the generated id.
func (r *EntryRepository) Create(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoEntry), zap.String("method", "Create"))

	created, err := scanEntry(r.pool.QueryRow(ctx, queryInsertEntry,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Value,
		entry.UserID,
		string(entry.Type),
		string(entry.Status),
		entry.RegisteredAt,
	))
	if err != nil {
		log.Error(ctx, msgErrCreateEntry, zap.Error(err))
		return entities.Entry{}, fmt.Errorf("%s: %w", errCtxCreateEntry, err)
	}

	return created, nil
}

// Update overwrites every mutable column of the entry with entry.ID.
// registered_at is kept as stored.
func (r *EntryRepository) Update(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoEntry), zap.String("method", "Update"))

	updated, err := scanEntry(r.pool.QueryRow(ctx, queryUpdateEntry,
		entry.ID,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Value,
		entry.UserID,
		string(entry.Type),
		string(entry.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgEntryNotFound, zap.Int64("id", entry.ID))
			return entities.Entry{}, entities.ErrEntryNotFound
		}
		log.Error(ctx, msgErrUpdateEntry, zap.Error(err))
		return entities.Entry{}, fmt.Errorf("%s: %w", errCtxUpdateEntry, err)
	}

	return updated, nil
}

// Delete removes the entry with id.
func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", repoEntry), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, queryDeleteEntry, id)
	if err != nil {
		log.Error(ctx, msgErrDeleteEntry, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteEntry, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, msgEntryNotFound, zap.Int64("id", id))
		return entities.ErrEntryNotFound
	}

	return nil
}

// FindByID loads a single entry.
func (r *EntryRepository) FindByID(ctx context.Context, id int64) (entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoEntry), zap.String("method", "FindByID"))

	entry, err := scanEntry(r.pool.QueryRow(ctx, queryEntryByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgEntryNotFound, zap.Int64("id", id))
			return entities.Entry{}, entities.ErrEntryNotFound
		}
		log.Error(ctx, msgErrFindEntry, zap.Error(err))
		return entities.Entry{}, fmt.Errorf("%s: %w", errCtxFindEntry, err)
	}

	return entry, nil
}

// FindByExample returns the entries matching every non-zero field of filter, ordered by id.
// Description matches as a case-insensitive substring.
func (r *EntryRepository) FindByExample(ctx context.Context, filter entities.Entry) ([]entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoEntry), zap.String("method", "FindByExample"))

	query, args := buildEntrySearch(filter)
	log.Debug(ctx, msgSearchingByExpl, zap.Int("conditions", len(args)))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, msgErrSearchEntry, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearch, err)
	}
	defer rows.Close()

	found := make([]entities.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error(ctx, msgErrScanEntry, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxScanEntry, err)
		}
		found = append(found, entry)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, msgErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIterate, err)
	}

	return found, nil
}

// SumValueByUserAndType returns the total value of the user's entries of entryType.
// The result is not Valid when the user has no such entries.
func (r *EntryRepository) SumValueByUserAndType(ctx context.Context, userID int64, entryType entities.EntryType) (decimal.NullDecimal, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoEntry), zap.String("method", "SumValueByUserAndType"))

	var sum decimal.NullDecimal
	if err := r.pool.QueryRow(ctx, querySumByType, userID, string(entryType)).Scan(&sum); err != nil {
		log.Error(ctx, msgErrSumEntries, zap.Error(err), zap.Int64("userID", userID))
		return decimal.NullDecimal{}, fmt.Errorf("%s: %w", errCtxSum, err)
	}

	return sum, nil
}

func buildEntrySearch(filter entities.Entry) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.Description != "" {
		add("description ILIKE '%' || ? || '%'", likeEscaper.Replace(filter.Description))
	}
	if filter.Month != 0 {
		add("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		add("year = ?", filter.Year)
	}
	if filter.UserID != 0 {
		add("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		add("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		add("status = ?", string(filter.Status))
	}

	query := querySelectEntries
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY id", args
}

func scanEntry(row pgx.Row) (entities.Entry, error) {
	var (
		entry       entities.Entry
		entryType   string
		entryStatus string
	)
	err := row.Scan(
		&entry.ID,
		&entry.Description,
		&entry.Month,
		&entry.Year,
		&entry.Value,
		&entry.UserID,
		&entryType,
		&entryStatus,
		&entry.RegisteredAt,
	)
	if err != nil {
		return entities.Entry{}, err
	}
	entry.Type = entities.EntryType(entryType)
	entry.Status = entities.EntryStatus(entryStatus)
	return entry, nil
}
