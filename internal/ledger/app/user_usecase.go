package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finledger/internal/ledger/domain/entities"
	"finledger/internal/ledger/ports/api"
	"finledger/internal/ledger/ports/repositories"
	svc "finledger/internal/ledger/ports/services"
	"finledger/pkg/logger"
)

const (
	methodValidateEmail = "ValidateEmail"
	methodCreateUser    = "CreateUser"
	methodAuthenticate  = "Authenticate"
	methodFindUser      = "FindUserByID"

	msgEmailTaken         = "email already registered"
	msgCreatingUser       = "creating user"
	msgUserCreated        = "user created"
	msgAuthAttempt        = "authentication attempt"
	msgAuthUnknownEmail   = "authentication with unknown email"
	msgAuthWrongPassword  = "authentication with wrong password"
	msgAuthenticated      = "user authenticated"
	msgUserNotFound       = "user not found"
	msgErrCheckEmail      = "failed to check email"
	msgErrPreparePassword = "failed to prepare password"
	msgErrCreateUser      = "failed to create user"
	msgErrFindUser        = "failed to find user"
	msgErrVerifyPassword  = "failed to verify password"

	errCtxCheckingEmail     = "checking email"
	errCtxPreparingPassword = "preparing password"
	errCtxCreatingUser      = "creating user"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxAuthenticating    = "authenticating"
)

// UserUseCaseImpl implements api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserUseCase creates the user service.
func NewUserUseCase(userRepo repositories.UserRepository, passwordSvc svc.PasswordService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// ValidateEmail fails when a user with exactly this email already exists.
func (u *UserUseCaseImpl) ValidateEmail(ctx context.Context, email string) error {
	log := logger.Log(ctx).With(zap.String("method", methodValidateEmail), zap.String("email", email))

	exists, err := u.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if exists {
		log.Debug(ctx, msgEmailTaken)
		return entities.ErrEmailAlreadyRegistered
	}

	return nil
}

// Create registers user after checking that its email is free.
func (u *UserUseCaseImpl) Create(ctx context.Context, user entities.User) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("email", user.Email))
	log.Debug(ctx, msgCreatingUser)

	if err := u.ValidateEmail(ctx, user.Email); err != nil {
		return entities.User{}, err
	}

	stored, err := u.passwordSvc.Hash(ctx, user.Password)
	if err != nil {
		log.Error(ctx, msgErrPreparePassword, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxPreparingPassword, err)
	}
	user.Password = stored

	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("userID", created.ID))
	return created, nil
}

// Authenticate returns the user registered under email when password matches.
func (u *UserUseCaseImpl) Authenticate(ctx context.Context, email, password string) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate), zap.String("email", email))
	log.Debug(ctx, msgAuthAttempt)

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgAuthUnknownEmail)
			return entities.User{}, fmt.Errorf("%s: %w", errCtxAuthenticating, entities.ErrAuthUserNotFound)
		}
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := u.passwordSvc.Verify(ctx, password, user.Password)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err), zap.Int64("userID", user.ID))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgAuthWrongPassword, zap.Int64("userID", user.ID))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxAuthenticating, entities.ErrAuthInvalidPassword)
	}

	log.Info(ctx, msgAuthenticated, zap.Int64("userID", user.ID))
	return user, nil
}

// FindByID returns nil and no error when the user does not exist.
func (u *UserUseCaseImpl) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindUser), zap.Int64("userID", id))

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUserNotFound)
			return nil, nil
		}
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return &user, nil
}
