package usecase

import (
	"context"
	"time"

	"flixd/internal/data/entity"
	"flixd/internal/data/repository"
	"flixd/internal/tmdb"
	"flixd/pkg/utils"

	"go.uber.org/zap"
)

// CatalogAPI is the upstream catalog surface the sync pipeline needs.
// Implemented by *tmdb.Client; faked in tests.
type CatalogAPI interface {
	Popular(ctx context.Context, kind entity.MediaKind) ([]tmdb.ListingItem, error)
	ChangedIDs(ctx context.Context, kind entity.MediaKind, since time.Time) ([]int64, error)
	Details(ctx context.Context, kind entity.MediaKind, id int64) (*tmdb.ListingItem, error)
	StreamingServices(ctx context.Context, kind entity.MediaKind, id int64) ([]string, error)
	TrailerURL(ctx context.Context, kind entity.MediaKind, id int64) (*string, error)
	GenreList(ctx context.Context, kind entity.MediaKind) ([]entity.Genre, error)
}

type Service struct {
	Sync  SyncService
	Genre GenreService
}

func NewService(repo *repository.Repository, api CatalogAPI, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Sync:  NewSyncService(repo, api, config.Sync.Workers, log),
		Genre: NewGenreService(repo, api, log),
	}
}
