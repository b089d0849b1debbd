package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"finledger/internal/ledger/domain/entities"
	"finledger/internal/ledger/ports/repositories"
	"finledger/pkg/logger"
)

const (
	userColumns = `id, name, email, password`

	queryInsertUser = `
        INSERT INTO users (name, email, password)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	queryUpdateUser = `
        UPDATE users
        SET name = $2, email = $3, password = $4
        WHERE id = $1
        RETURNING ` + userColumns

	queryDeleteUser     = `DELETE FROM users WHERE id = $1`
	querySelectUsers    = `SELECT ` + userColumns + ` FROM users`
	queryUserByID       = querySelectUsers + ` WHERE id = $1`
	queryUserByEmail    = querySelectUsers + ` WHERE email = $1`
	queryUserEmailTaken = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	repoUser = "user"

	msgUserNotFound     = "user not found"
	msgErrCreateUser    = "error creating user"
	msgErrUpdateUser    = "error updating user"
	msgErrDeleteUser    = "error deleting user"
	msgErrFindUser      = "error finding user"
	msgErrSearchUsers   = "error searching users"
	msgErrScanUser      = "error scanning user"
	msgErrCheckingEmail = "error checking email"

	errCtxCreateUser   = "error creating user"
	errCtxUpdateUser   = "error updating user"
	errCtxDeleteUser   = "error deleting user"
	errCtxFindUserID   = "error querying user by id"
	errCtxFindUserMail = "error querying user by email"
	errCtxSearchUsers  = "error searching users"
	errCtxScanUser     = "error scanning user"
	errCtxCheckEmail   = "error checking email"
)

// UserRepository implements repositories.UserRepository on top of Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository creates a user repository backed by pool.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts user and returns it with the generated id.
func (r *UserRepository) Create(ctx context.Context, user entities.User) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx, queryInsertUser, user.Name, user.Email, user.Password))
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxCreateUser, err)
	}

	return created, nil
}

// Update overwrites the user with user.ID.
func (r *UserRepository) Update(ctx context.Context, user entities.User) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "Update"))

	updated, err := scanUser(r.pool.QueryRow(ctx, queryUpdateUser, user.ID, user.Name, user.Email, user.Password))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.Int64("id", user.ID))
			return entities.User{}, entities.ErrUserNotFound
		}
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxUpdateUser, err)
	}

	return updated, nil
}

// Delete removes the user with id.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, queryDeleteUser, id)
	if err != nil {
		log.Error(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteUser, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, msgUserNotFound, zap.Int64("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "FindByID"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.Int64("id", id))
			return entities.User{}, entities.ErrUserNotFound
		}
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxFindUserID, err)
	}

	return user, nil
}

// FindByEmail loads a user by exact email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "FindByEmail"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.String("email", email))
			return entities.User{}, entities.ErrUserNotFound
		}
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxFindUserMail, err)
	}

	return user, nil
}

// ExistsByEmail reports whether a user with exactly this email is stored.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "ExistsByEmail"))

	var exists bool
	if err := r.pool.QueryRow(ctx, queryUserEmailTaken, email).Scan(&exists); err != nil {
		log.Error(ctx, msgErrCheckingEmail, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxCheckEmail, err)
	}

	return exists, nil
}

// FindByExample returns the users matching every non-empty field of filter, ordered by id.
// Name matches as a case-insensitive substring, email exactly.
func (r *UserRepository) FindByExample(ctx context.Context, filter entities.User) ([]entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoUser), zap.String("method", "FindByExample"))

	query, args := buildUserSearch(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, msgErrSearchUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearchUsers, err)
	}
	defer rows.Close()

	found := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, msgErrScanUser, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxScanUser, err)
		}
		found = append(found, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, msgErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIterate, err)
	}

	return found, nil
}

func buildUserSearch(filter entities.User) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.ID != 0 {
		args = append(args, filter.ID)
		conds = append(conds, "id = $"+strconv.Itoa(len(args)))
	}
	if filter.Name != "" {
		args = append(args, likeEscaper.Replace(filter.Name))
		conds = append(conds, "name ILIKE '%' || $"+strconv.Itoa(len(args))+" || '%'")
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		conds = append(conds, "email = $"+strconv.Itoa(len(args)))
	}

	query := querySelectUsers
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY id", args
}

func scanUser(row pgx.Row) (entities.User, error) {
	var user entities.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password); err != nil {
		return entities.User{}, err
	}
	return user, nil
}
