package middleware

import (
	"github.com/gofiber/fiber/v3"

	"finledger/pkg/logger"
)

// NewRequestIDMiddleware attaches a request id to the request context and the response.
// An incoming X-Request-ID header is reused.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Locals(LocalUserContext, logger.NewRequestIDContext(ctx, requestID))
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
