package services

import "errors"

var (
	ErrHashingFailed      = errors.New("password hashing failed")
	ErrGeneratingJWTToken = errors.New("error generating JWT token")
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
)
