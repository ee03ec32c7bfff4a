package adaptor

import (
	"context"

	"flixd/internal/data/repository"
	"flixd/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Sync *SyncHandler
}

// NewHandler wires the HTTP handlers. baseCtx is the parent of every
// background sync run, so a process shutdown cancels them cooperatively.
func NewHandler(baseCtx context.Context, service *usecase.Service, repo *repository.Repository, log *zap.Logger) *Handler {
	return &Handler{
		Sync: NewSyncHandler(baseCtx, service.Sync, service.Genre, repo, log),
	}
}
