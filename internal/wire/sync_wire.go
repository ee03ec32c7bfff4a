package wire

import (
	"flixd/internal/adaptor"
	"flixd/pkg/middleware"
	"flixd/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSync(
	r chi.Router,
	syncHandler *adaptor.SyncHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public read endpoints
	r.Get("/api/status", syncHandler.GetStatus)
	r.Get("/api/genres", syncHandler.GetGenres)

	// Admin-triggered runs
	r.Route("/api/admin/sync", func(r chi.Router) {
		r.Use(middleware.AdminToken(config.Admin.TokenHash, log))

		r.Post("/full", syncHandler.TriggerFull)
		r.Post("/delta", syncHandler.TriggerDelta)
		r.Post("/genres", syncHandler.TriggerGenres)
	})
}
