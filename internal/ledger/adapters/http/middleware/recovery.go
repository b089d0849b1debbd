package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/pkg/logger"
)

const (
	LogServerPanic       = "server panic"
	LogPanicResponseFail = "failed to send error response after panic"
	MsgInternalError     = "internal server error"
)

// NewRecoveryMiddleware turns a panic in a later handler into a 500 response.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				log.Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": MsgInternalError,
				}); err != nil {
					log.Error(requestCtx, LogPanicResponseFail, zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}
