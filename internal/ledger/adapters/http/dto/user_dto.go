package dto

import (
	"time"

	"finledger/internal/ledger/domain/entities"
)

// RegisterRequest is the body of a user registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthenticateRequest is the body of a login.
type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is a user without its credential.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthenticateResponse carries the authenticated user and its access token.
type AuthenticateResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// BalanceResponse is the balance of one user.
type BalanceResponse struct {
	UserID  int64  `json:"user_id"`
	Balance string `json:"balance"`
}

// ToUser converts the request to a domain user.
func (r RegisterRequest) ToUser() entities.User {
	return entities.User{Name: r.Name, Email: r.Email, Password: r.Password}
}

// NewUserResponse renders user.
func NewUserResponse(user entities.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}
