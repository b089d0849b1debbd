package http_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"finledger/internal/ledger/domain/entities"
)

type mockEntryUseCase struct {
	mock.Mock
}

func (m *mockEntryUseCase) Validate(entry entities.Entry) error {
	return m.Called(entry).Error(0)
}

func (m *mockEntryUseCase) Save(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(entities.Entry), args.Error(1)
}

func (m *mockEntryUseCase) Update(ctx context.Context, entry entities.Entry) (entities.Entry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(entities.Entry), args.Error(1)
}

func (m *mockEntryUseCase) Delete(ctx context.Context, entry entities.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockEntryUseCase) Search(ctx context.Context, filter entities.Entry) ([]entities.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Entry), args.Error(1)
}

func (m *mockEntryUseCase) ChangeStatus(ctx context.Context, entry entities.Entry, status entities.EntryStatus) (entities.Entry, error) {
	args := m.Called(ctx, entry, status)
	return args.Get(0).(entities.Entry), args.Error(1)
}

func (m *mockEntryUseCase) FindByID(ctx context.Context, id int64) (*entities.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entry), args.Error(1)
}

func (m *mockEntryUseCase) ComputeBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) ValidateEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockUserUseCase) Create(ctx context.Context, user entities.User) (entities.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserUseCase) Authenticate(ctx context.Context, email, password string) (entities.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockUserUseCase) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID int64, email string) (string, time.Time, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}
