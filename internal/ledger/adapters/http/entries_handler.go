package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/ledger/adapters/http/dto"
	"finledger/internal/ledger/adapters/http/middleware"
	"finledger/internal/ledger/domain/entities"
	"finledger/internal/ledger/ports/api"
	"finledger/pkg/logger"
)

const (
	LogHandlerCreateEntry  = "handling create entry request"
	LogHandlerUpdateEntry  = "handling update entry request"
	LogHandlerDeleteEntry  = "handling delete entry request"
	LogHandlerSearch       = "handling search entries request"
	LogHandlerChangeStatus = "handling change status request"
	LogHandlerGetEntry     = "handling get entry request"

	ErrMsgInvalidQuery = "invalid query parameter"
)

// EntriesHandler serves the /entries routes. Every route acts on the
// authenticated user's entries only; other users' entries are reported as missing.
type EntriesHandler struct {
	entries api.EntryUseCase
}

// NewEntriesHandler creates the entry handlers.
func NewEntriesHandler(entries api.EntryUseCase) *EntriesHandler {
	return &EntriesHandler{entries: entries}
}

// Create saves a new entry for the authenticated user.
func (h *EntriesHandler) Create(ctx fiber.Ctx) error {
	requestCtx, userID, ok := h.begin(ctx, LogHandlerCreateEntry, "EntriesHandler.Create")
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}

	var req dto.EntryRequest
	if handled, err := bindEntry(ctx, &req); handled {
		return err
	}

	saved, err := h.entries.Save(requestCtx, req.ToEntry(userID))
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, dto.NewEntryResponse(saved))
}

// Update overwrites an entry. An omitted status keeps the stored one.
func (h *EntriesHandler) Update(ctx fiber.Ctx) error {
	requestCtx, userID, ok := h.begin(ctx, LogHandlerUpdateEntry, "EntriesHandler.Update")
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}

	existing, handled, err := h.ownedEntry(ctx, requestCtx, userID)
	if handled {
		return err
	}

	var req dto.EntryRequest
	if handled, err := bindEntry(ctx, &req); handled {
		return err
	}

	entry := req.ToEntry(userID)
	entry.ID = existing.ID
	entry.RegisteredAt = existing.RegisteredAt
	if entry.Status == "" {
		entry.Status = existing.Status
	}

	updated, err := h.entries.Update(requestCtx, entry)
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NewEntryResponse(updated))
}

// Delete removes an entry.
func (h *EntriesHandler) Delete(ctx fiber.Ctx) error {
	requestCtx, userID, ok := h.begin(ctx, LogHandlerDeleteEntry, "EntriesHandler.Delete")
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}

	existing, handled, err := h.ownedEntry(ctx, requestCtx, userID)
	if handled {
		return err
	}

	if err := h.entries.Delete(requestCtx, existing); err != nil {
		return respondError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// Search lists the authenticated user's entries matching the query parameters
// description, month, year, type and status.
func (h *EntriesHandler) Search(ctx fiber.Ctx) error {
	requestCtx, userID, ok := h.begin(ctx, LogHandlerSearch, "EntriesHandler.Search")
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}

	filter := entities.Entry{
		Description: ctx.Query("description"),
		UserID:      userID,
		Type:        entities.EntryType(ctx.Query("type")),
		Status:      entities.EntryStatus(ctx.Query("status")),
	}

	var err error
	if filter.Month, err = queryInt(ctx, "month"); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidQuery+": month")
	}
	if filter.Year, err = queryInt(ctx, "year"); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidQuery+": year")
	}

	found, err := h.entries.Search(requestCtx, filter)
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NewEntryListResponse(found))
}

// ChangeStatus sets the status of an entry.
func (h *EntriesHandler) ChangeStatus(ctx fiber.Ctx) error {
	requestCtx, userID, ok := h.begin(ctx, LogHandlerChangeStatus, "EntriesHandler.ChangeStatus")
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}

	existing, handled, err := h.ownedEntry(ctx, requestCtx, userID)
	if handled {
		return err
	}

	var req dto.StatusRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(ctx, err)
	}

	updated, err := h.entries.ChangeStatus(requestCtx, existing, entities.EntryStatus(req.Status))
	if err != nil {
		return respondError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NewEntryResponse(updated))
}

// Get returns one entry.
func (h *EntriesHandler) Get(ctx fiber.Ctx) error {
	requestCtx, userID, ok := h.begin(ctx, LogHandlerGetEntry, "EntriesHandler.Get")
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthenticated)
	}

	existing, handled, err := h.ownedEntry(ctx, requestCtx, userID)
	if handled {
		return err
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NewEntryResponse(existing))
}

func (h *EntriesHandler) begin(ctx fiber.Ctx, msg, handler string) (context.Context, int64, bool) {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, msg, zap.String("handler", handler))

	userID, ok := middleware.UserID(ctx)
	return requestCtx, userID, ok
}

// ownedEntry loads the entry named by the id path parameter. When handled is
// true a response was already written and err is what the handler returns.
func (h *EntriesHandler) ownedEntry(ctx fiber.Ctx, requestCtx context.Context, userID int64) (entry entities.Entry, handled bool, err error) {
	id, parseErr := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if parseErr != nil || id <= 0 {
		return entities.Entry{}, true, sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	found, err := h.entries.FindByID(requestCtx, id)
	if err != nil {
		return entities.Entry{}, true, respondError(ctx, err)
	}
	if found == nil || found.UserID != userID {
		return entities.Entry{}, true, sendError(ctx, fiber.StatusNotFound, ErrMsgEntryNotFound)
	}

	return *found, false, nil
}

// bindEntry decodes and checks an entry body. When handled is true an error
// response was already written.
func bindEntry(ctx fiber.Ctx, req *dto.EntryRequest) (handled bool, err error) {
	if err := ctx.Bind().Body(req); err != nil {
		return true, sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := dto.Validate(*req); err != nil {
		return true, respondError(ctx, err)
	}
	return false, nil
}

func queryInt(ctx fiber.Ctx, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
