package postgres_test

import (
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/ledger/adapters/postgres"
	"finledger/internal/ledger/domain/entities"
)

var userRowColumns = []string{"id", "name", "email", "password"}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	input := entities.User{Name: "Ana", Email: "ana@mail.com", Password: "secret"}

	t.Run("successful insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ana", "ana@mail.com", "secret").
			WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(3), "Ana", "ana@mail.com", "secret"))

		created, err := postgres.NewUserRepository(mock).Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(3), created.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		uniqueErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ana", "ana@mail.com", "secret").
			WillReturnError(uniqueErr)

		_, err = postgres.NewUserRepository(mock).Create(ctx, input)

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "23505", pgErr.Code)
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := testContext(t)
	input := entities.User{ID: 3, Name: "Ana Maria", Email: "ana@mail.com", Password: "secret"}

	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs(int64(3), "Ana Maria", "ana@mail.com", "secret").
			WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(3), "Ana Maria", "ana@mail.com", "secret"))

		updated, err := postgres.NewUserRepository(mock).Update(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", updated.Name)
	})

	t.Run("missing row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs(int64(3), "Ana Maria", "ana@mail.com", "secret").
			WillReturnError(pgx.ErrNoRows)

		_, err = postgres.NewUserRepository(mock).Update(ctx, input)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("deleted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnResult(pgconn.NewCommandTag("DELETE 1"))

		require.NoError(t, postgres.NewUserRepository(mock).Delete(ctx, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnResult(pgconn.NewCommandTag("DELETE 0"))

		err = postgres.NewUserRepository(mock).Delete(ctx, 3)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM users WHERE id = \\$1").
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(3), "Ana", "ana@mail.com", "secret"))

		got, err := postgres.NewUserRepository(mock).FindByID(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, entities.User{ID: 3, Name: "Ana", Email: "ana@mail.com", Password: "secret"}, got)
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM users WHERE id = \\$1").
			WithArgs(int64(4)).
			WillReturnError(pgx.ErrNoRows)

		_, err = postgres.NewUserRepository(mock).FindByID(ctx, 4)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM users WHERE email = \\$1").
			WithArgs("ana@mail.com").
			WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(3), "Ana", "ana@mail.com", "secret"))

		got, err := postgres.NewUserRepository(mock).FindByEmail(ctx, "ana@mail.com")

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM users WHERE email = \\$1").
			WithArgs("ANA@mail.com").
			WillReturnError(pgx.ErrNoRows)

		_, err = postgres.NewUserRepository(mock).FindByEmail(ctx, "ANA@mail.com")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM users WHERE email = \\$1").
			WithArgs("ana@mail.com").
			WillReturnError(errDatabaseConnection)

		_, err = postgres.NewUserRepository(mock).FindByEmail(ctx, "ana@mail.com")

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.NotErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	ctx := testContext(t)

	for _, exists := range []bool{true, false} {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)")).
			WithArgs("ana@mail.com").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))

		got, err := postgres.NewUserRepository(mock).ExistsByEmail(ctx, "ana@mail.com")

		require.NoError(t, err)
		assert.Equal(t, exists, got)
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	}

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("ana@mail.com").
			WillReturnError(errDatabaseConnection)

		_, err = postgres.NewUserRepository(mock).ExistsByEmail(ctx, "ana@mail.com")

		require.ErrorIs(t, err, errDatabaseConnection)
	})
}

func TestUserRepository_FindByExample(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE name ILIKE '%' || $1 || '%' AND email = $2 ORDER BY id")).
		WithArgs("an", "ana@mail.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(3), "Ana", "ana@mail.com", "secret"))

	got, err := postgres.NewUserRepository(mock).FindByExample(ctx, entities.User{Name: "an", Email: "ana@mail.com"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFactory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	factory := postgres.NewRepositoryFactory(mock)

	assert.IsType(t, &postgres.EntryRepository{}, factory.EntryRepository())
	assert.IsType(t, &postgres.UserRepository{}, factory.UserRepository())
}
