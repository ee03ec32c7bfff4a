package repository

import (
	"context"
	"fmt"

	"flixd/internal/data/entity"
	"flixd/pkg/database"

	"go.uber.org/zap"
)

type MediaRepository interface {
	// Upsert writes one normalized record keyed by (kind, id): insert
	// if absent, overwrite all fields if present. Replaying the same
	// record is a no-op on the final state.
	Upsert(ctx context.Context, media *entity.Media) error
	CountByKind(ctx context.Context, kind entity.MediaKind) (int64, error)
}

type mediaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMediaRepository(db database.PgxIface, log *zap.Logger) MediaRepository {
	return &mediaRepository{
		db:  db,
		log: log.With(zap.String("repository", "media")),
	}
}

const upsertMovieQuery = `
	INSERT INTO movies (id, title, overview, release_date, poster_path, backdrop_path,
	                    popularity, vote_average, vote_count, genre_ids, original_language,
	                    adult, video, streaming_services, trailer_url, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		overview = EXCLUDED.overview,
		release_date = EXCLUDED.release_date,
		poster_path = EXCLUDED.poster_path,
		backdrop_path = EXCLUDED.backdrop_path,
		popularity = EXCLUDED.popularity,
		vote_average = EXCLUDED.vote_average,
		vote_count = EXCLUDED.vote_count,
		genre_ids = EXCLUDED.genre_ids,
		original_language = EXCLUDED.original_language,
		adult = EXCLUDED.adult,
		video = EXCLUDED.video,
		streaming_services = EXCLUDED.streaming_services,
		trailer_url = EXCLUDED.trailer_url,
		updated_at = EXCLUDED.updated_at
`

const upsertTVShowQuery = `
	INSERT INTO tvshows (id, name, overview, first_air_date, poster_path, backdrop_path,
	                     popularity, vote_average, vote_count, genre_ids, original_language,
	                     streaming_services, trailer_url, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		overview = EXCLUDED.overview,
		first_air_date = EXCLUDED.first_air_date,
		poster_path = EXCLUDED.poster_path,
		backdrop_path = EXCLUDED.backdrop_path,
		popularity = EXCLUDED.popularity,
		vote_average = EXCLUDED.vote_average,
		vote_count = EXCLUDED.vote_count,
		genre_ids = EXCLUDED.genre_ids,
		original_language = EXCLUDED.original_language,
		streaming_services = EXCLUDED.streaming_services,
		trailer_url = EXCLUDED.trailer_url,
		updated_at = EXCLUDED.updated_at
`

func (r *mediaRepository) Upsert(ctx context.Context, media *entity.Media) error {
	var err error

	switch media.Kind {
	case entity.MediaKindMovie:
		_, err = r.db.Exec(ctx, upsertMovieQuery,
			media.ID,
			media.Title,
			media.Overview,
			media.ReleaseDate,
			media.PosterPath,
			media.BackdropPath,
			media.Popularity,
			media.VoteAverage,
			media.VoteCount,
			media.GenreIDs,
			media.OriginalLanguage,
			media.Adult,
			media.Video,
			media.StreamingServices,
			media.TrailerURL,
			media.UpdatedAt,
		)
	case entity.MediaKindTV:
		_, err = r.db.Exec(ctx, upsertTVShowQuery,
			media.ID,
			media.Title,
			media.Overview,
			media.ReleaseDate,
			media.PosterPath,
			media.BackdropPath,
			media.Popularity,
			media.VoteAverage,
			media.VoteCount,
			media.GenreIDs,
			media.OriginalLanguage,
			media.StreamingServices,
			media.TrailerURL,
			media.UpdatedAt,
		)
	default:
		return fmt.Errorf("unknown media kind: %q", media.Kind)
	}

	if err != nil {
		r.log.Error("Failed to upsert media",
			zap.Error(err),
			zap.String("kind", string(media.Kind)),
			zap.Int64("id", media.ID),
		)
		return fmt.Errorf("upsert %s %d: %w", media.Kind, media.ID, err)
	}

	return nil
}

func (r *mediaRepository) CountByKind(ctx context.Context, kind entity.MediaKind) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to count media",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}

	return total, nil
}

func tableFor(kind entity.MediaKind) (string, error) {
	switch kind {
	case entity.MediaKindMovie:
		return "movies", nil
	case entity.MediaKindTV:
		return "tvshows", nil
	default:
		return "", fmt.Errorf("unknown media kind: %q", kind)
	}
}
