package services

import (
	"context"
	"time"
)

// TokenService issues and checks access tokens bound to a user ID.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID int64, email string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (int64, error)
}
