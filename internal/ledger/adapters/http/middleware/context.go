// Package middleware holds the fiber middleware of the ledger API.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

const (
	// LocalUserContext is the fiber local holding the request context.Context.
	LocalUserContext = "userContext"
	// LocalUserID is the fiber local holding the authenticated user id.
	LocalUserID = "userID"
	// HeaderRequestID carries the request id in and out.
	HeaderRequestID = "X-Request-ID"
)

// RequestContext returns the context stored by the request id middleware,
// falling back to the fiber request context.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx
}

// UserID returns the user authenticated by the auth middleware.
func UserID(ctx fiber.Ctx) (int64, bool) {
	id, ok := ctx.Locals(LocalUserID).(int64)
	return id, ok
}
