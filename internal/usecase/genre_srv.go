package usecase

import (
	"context"
	"fmt"

	"flixd/internal/data/entity"
	"flixd/internal/data/repository"

	"go.uber.org/zap"
)

type GenreService interface {
	// Sync fetches both kind vocabularies, merges them and upserts the
	// result. Returns the number of unique genres written. Independent
	// of the media sync: either fetch failing fails the whole genre
	// sync and nothing is written.
	Sync(ctx context.Context) (int, error)
}

type genreService struct {
	repo *repository.Repository
	api  CatalogAPI
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, api CatalogAPI, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		api:  api,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) Sync(ctx context.Context) (int, error) {
	movieGenres, err := s.api.GenreList(ctx, entity.MediaKindMovie)
	if err != nil {
		s.log.Error("Failed to fetch movie genres", zap.Error(err))
		return 0, fmt.Errorf("fetch movie genres: %w", err)
	}

	tvGenres, err := s.api.GenreList(ctx, entity.MediaKindTV)
	if err != nil {
		s.log.Error("Failed to fetch tv genres", zap.Error(err))
		return 0, fmt.Errorf("fetch tv genres: %w", err)
	}

	merged := mergeGenres(movieGenres, tvGenres)

	if err := s.repo.Genre.UpsertAll(ctx, merged); err != nil {
		s.log.Error("Failed to upsert genres", zap.Error(err))
		return 0, fmt.Errorf("upsert genres: %w", err)
	}

	s.log.Info("Genres synced",
		zap.Int("movie", len(movieGenres)),
		zap.Int("tv", len(tvGenres)),
		zap.Int("unique", len(merged)),
	)
	return len(merged), nil
}

// mergeGenres deduplicates by identifier, keeping first-seen order.
// When the same identifier appears in more than one list, the
// later-processed entry's name wins.
func mergeGenres(lists ...[]entity.Genre) []entity.Genre {
	index := make(map[int64]int)
	var merged []entity.Genre

	for _, list := range lists {
		for _, genre := range list {
			if i, ok := index[genre.ID]; ok {
				merged[i] = genre
				continue
			}
			index[genre.ID] = len(merged)
			merged = append(merged, genre)
		}
	}

	return merged
}
