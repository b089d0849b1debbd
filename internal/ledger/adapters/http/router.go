// Package http exposes the ledger over a JSON HTTP API.
package http

import (
	"github.com/gofiber/fiber/v3"

	"finledger/internal/ledger/adapters/http/middleware"
	"finledger/internal/ledger/config"
	"finledger/internal/ledger/ports/services"
)

const ErrMsgRouteNotFound = "route not found"

// NewApp creates the fiber application with the ledger error handler.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "finledger",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: ErrorHandler,
	})
}

// SetupRouter registers middleware and routes.
func SetupRouter(app *fiber.App, users *UsersHandler, entries *EntriesHandler, tokens services.TokenService) {
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	auth := middleware.NewAuthMiddleware(tokens)

	api := app.Group("/api")

	userRoutes := api.Group("/users")
	userRoutes.Post("/", users.Register)
	userRoutes.Post("/authenticate", users.Authenticate)
	userRoutes.Get("/:id/balance", auth, users.Balance)

	entryRoutes := api.Group("/entries", auth)
	entryRoutes.Post("/", entries.Create)
	entryRoutes.Get("/", entries.Search)
	entryRoutes.Get("/:id", entries.Get)
	entryRoutes.Put("/:id", entries.Update)
	entryRoutes.Put("/:id/status", entries.ChangeStatus)
	entryRoutes.Delete("/:id", entries.Delete)

	app.Use(func(ctx fiber.Ctx) error {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgRouteNotFound)
	})
}
