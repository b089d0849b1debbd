package app_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"finledger/internal/ledger/domain/entities"
)

type mockEntryRepository struct {
	mock.Mock
}

func (m *mockEntryRepository) Create(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) Update(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEntryRepository) FindByID(ctx context.Context, id int64) (entities.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) FindByExample(ctx context.Context, filter entities.Entry) ([]entities.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) SumValueByUserAndType(ctx context.Context, userID int64, entryType entities.EntryType) (decimal.NullDecimal, error) {
	args := m.Called(ctx, userID, entryType)
	return args.Get(0).(decimal.NullDecimal), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user entities.User) (entities.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user entities.User) (entities.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (entities.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByExample(ctx context.Context, filter entities.User) ([]entities.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (entities.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, stored string) (bool, error) {
	args := m.Called(ctx, password, stored)
	return args.Bool(0), args.Error(1)
}

func validEntry() entities.Entry {
	return entities.Entry{
		Description: "rent",
		Month:       12,
		Year:        2023,
		Value:       decimal.NewFromInt(100),
		UserID:      1,
		Type:        entities.EntryTypeExpense,
	}
}

func persistedEntry() entities.Entry {
	e := validEntry()
	e.ID = 1
	e.Status = entities.EntryStatusPending
	e.RegisteredAt = time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	return e
}
