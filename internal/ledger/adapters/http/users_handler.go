package http

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/ledger/adapters/http/dto"
	"finledger/internal/ledger/adapters/http/middleware"
	"finledger/internal/ledger/ports/api"
	"finledger/internal/ledger/ports/services"
	"finledger/pkg/logger"
)

const (
	LogHandlerRegister     = "handling register request"
	LogHandlerAuthenticate = "handling authenticate request"
	LogHandlerBalance      = "handling balance request"
)

// UsersHandler serves the /users routes.
type UsersHandler struct {
	users   api.UserUseCase
	entries api.EntryUseCase
	tokens  services.TokenService
}

// NewUsersHandler creates the user handlers.
func NewUsersHandler(users api.UserUseCase, entries api.EntryUseCase, tokens services.TokenService) *UsersHandler {
	return &UsersHandler{users: users, entries: entries, tokens: tokens}
}

// Register creates a user.
func (h *UsersHandler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerRegister, zap.String("handler", "UsersHandler.Register"))

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(ctx, err)
	}

	user, err := h.users.Create(requestCtx, req.ToUser())
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, dto.NewUserResponse(user))
}

// Authenticate checks credentials and issues an access token.
func (h *UsersHandler) Authenticate(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerAuthenticate, zap.String("handler", "UsersHandler.Authenticate"))

	var req dto.AuthenticateRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(ctx, err)
	}

	user, err := h.users.Authenticate(requestCtx, req.Email, req.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	token, expiresAt, err := h.tokens.GenerateAccessToken(requestCtx, user.ID, user.Email)
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.AuthenticateResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}

// Balance returns income minus expense of the user in the path.
// Only the authenticated user's own balance is readable.
func (h *UsersHandler) Balance(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerBalance, zap.String("handler", "UsersHandler.Balance"))

	userID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || userID <= 0 {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	callerID, ok := middleware.UserID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}
	if callerID != userID {
		return sendError(ctx, fiber.StatusForbidden, ErrMsgForbidden)
	}

	user, err := h.users.FindByID(requestCtx, userID)
	if err != nil {
		return respondError(ctx, err)
	}
	if user == nil {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgUserNotFound)
	}

	balance, err := h.entries.ComputeBalance(requestCtx, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: balance.StringFixed(2),
	})
}
