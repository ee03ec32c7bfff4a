package adaptor

import (
	"context"
	"net/http"

	"flixd/internal/data/entity"
	"flixd/internal/data/repository"
	"flixd/internal/dto/response"
	"flixd/internal/usecase"
	"flixd/pkg/utils"

	"go.uber.org/zap"
)

type SyncHandler struct {
	baseCtx context.Context
	sync    usecase.SyncService
	genre   usecase.GenreService
	repo    *repository.Repository
	log     *zap.Logger
}

func NewSyncHandler(baseCtx context.Context, sync usecase.SyncService, genre usecase.GenreService, repo *repository.Repository, log *zap.Logger) *SyncHandler {
	return &SyncHandler{
		baseCtx: baseCtx,
		sync:    sync,
		genre:   genre,
		repo:    repo,
		log:     log.With(zap.String("handler", "sync")),
	}
}

// GetStatus handles GET /api/status
func (h *SyncHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := response.StatusResponse{
		Syncing:  h.sync.InProgress(),
		Cursors:  []response.CursorResponse{},
		LastRuns: []response.RunReportResponse{},
	}

	movies, err := h.repo.Media.CountByKind(ctx, entity.MediaKindMovie)
	if err != nil {
		h.log.Error("Failed to count movies", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	status.Movies = movies

	shows, err := h.repo.Media.CountByKind(ctx, entity.MediaKindTV)
	if err != nil {
		h.log.Error("Failed to count tvshows", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	status.TVShows = shows

	genres, err := h.repo.Genre.Count(ctx)
	if err != nil {
		h.log.Error("Failed to count genres", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	status.Genres = genres

	for _, kind := range entity.Kinds() {
		cursor, err := h.repo.Cursor.Get(ctx, kind)
		if err != nil {
			h.log.Error("Failed to read cursor", zap.Error(err), zap.String("kind", string(kind)))
			utils.ResponseInternalError(w, "Internal server error")
			return
		}
		status.Cursors = append(status.Cursors, response.CursorResponse{
			Kind:       string(cursor.Kind),
			LastSyncAt: cursor.LastSyncAt,
		})
	}

	for _, report := range h.sync.LastReports() {
		status.LastRuns = append(status.LastRuns, response.RunReportToResponse(report))
	}

	utils.ResponseSuccess(w, "success", status)
}

// GetGenres handles GET /api/genres
func (h *SyncHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.repo.Genre.FindAll(r.Context())
	if err != nil {
		h.log.Error("Failed to list genres", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	list := make([]response.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		list = append(list, response.GenreResponse{ID: genre.ID, Name: genre.Name})
	}

	utils.ResponseSuccess(w, "success", list)
}

// TriggerFull handles POST /api/admin/sync/full
func (h *SyncHandler) TriggerFull(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, "full sync", func(ctx context.Context) error {
		if _, err := h.genre.Sync(ctx); err != nil {
			// Genre sync failure does not block the media sync
			h.log.Error("Genre sync failed", zap.Error(err))
		}
		_, err := h.sync.FullSync(ctx)
		return err
	})
}

// TriggerDelta handles POST /api/admin/sync/delta
func (h *SyncHandler) TriggerDelta(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, "delta sync", func(ctx context.Context) error {
		_, err := h.sync.DeltaSync(ctx)
		return err
	})
}

// TriggerGenres handles POST /api/admin/sync/genres
func (h *SyncHandler) TriggerGenres(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, "genre sync", func(ctx context.Context) error {
		_, err := h.genre.Sync(ctx)
		return err
	})
}

// trigger launches a run in the background and reports acceptance. The
// run itself reports through logs and /api/status.
func (h *SyncHandler) trigger(w http.ResponseWriter, name string, run func(ctx context.Context) error) {
	if h.sync.InProgress() {
		utils.ResponseConflict(w, "A sync run is already in progress")
		return
	}

	go func() {
		if err := run(h.baseCtx); err != nil {
			h.log.Error("Triggered run failed", zap.String("trigger", name), zap.Error(err))
		}
	}()

	h.log.Info("Run triggered", zap.String("trigger", name))
	utils.ResponseAccepted(w, name+" started", nil)
}
