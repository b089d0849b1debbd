package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/ledger/adapters/http/dto"
	"finledger/internal/ledger/adapters/http/middleware"
	"finledger/internal/ledger/domain/entities"
	"finledger/pkg/logger"
)

const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidID          = "invalid id"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgEntryNotFound      = "entry not found"
	ErrMsgUserNotFound       = "user not found"
	ErrMsgForbidden          = "access to another user's data is forbidden"
	ErrMsgUnauthenticated    = "authentication required"

	LogAuthenticationFailed = "authentication failed"
	LogUnhandledError       = "unhandled error"
)

// respondError writes the response matching err.
func respondError(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)

	var (
		validationErr *entities.ValidationError
		authErr       *entities.AuthenticationError
		requestErr    *dto.RequestError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return sendError(ctx, fiber.StatusBadRequest, validationErr.Reason)
	case errors.As(err, &authErr):
		logger.Log(requestCtx).Info(requestCtx, LogAuthenticationFailed,
			zap.String("kind", string(authErr.Kind)),
			zap.String("reason", authErr.Reason))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidCredentials)
	case errors.As(err, &requestErr):
		return sendError(ctx, fiber.StatusBadRequest, requestErr.Message)
	case errors.Is(err, entities.ErrEntryNotFound):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgEntryNotFound)
	case errors.Is(err, entities.ErrUserNotFound):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgUserNotFound)
	case errors.As(err, &fiberErr):
		return sendError(ctx, fiberErr.Code, fiberErr.Message)
	}

	logger.Log(requestCtx).Error(requestCtx, LogUnhandledError, zap.Error(err))
	return sendError(ctx, fiber.StatusInternalServerError, middleware.MsgInternalError)
}

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body interface{}) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ErrorHandler is the fiber error handler for errors escaping the handlers.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	return respondError(ctx, err)
}
