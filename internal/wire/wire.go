package wire

import (
	"context"
	"net/http"

	"flixd/internal/adaptor"
	"flixd/internal/data/repository"
	"flixd/internal/usecase"
	"flixd/pkg/middleware"
	"flixd/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface for serve mode.
type App struct {
	Router *chi.Mux
}

// Wiring connects services and handlers to the router.
func Wiring(baseCtx context.Context, service *usecase.Service, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(baseCtx, service, repo, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireSync(r, handler.Sync, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
