package repository

import (
	"context"
	"fmt"

	"flixd/internal/data/entity"
	"flixd/pkg/database"

	"go.uber.org/zap"
)

type GenreRepository interface {
	// UpsertAll writes the merged genre set in one transaction, so a
	// failed reconciliation never leaves a half-written vocabulary.
	UpsertAll(ctx context.Context, genres []entity.Genre) error
	FindAll(ctx context.Context) ([]entity.Genre, error)
	Count(ctx context.Context) (int64, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) UpsertAll(ctx context.Context, genres []entity.Genre) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin genre upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO genres (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`

	for _, genre := range genres {
		if _, err := tx.Exec(ctx, query, genre.ID, genre.Name); err != nil {
			r.log.Error("Failed to upsert genre",
				zap.Error(err),
				zap.Int64("genre_id", genre.ID),
				zap.String("name", genre.Name),
			)
			return fmt.Errorf("upsert genre %d: %w", genre.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit genre upsert: %w", err)
	}

	r.log.Debug("Genres upserted", zap.Int("count", len(genres)))
	return nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]entity.Genre, error) {
	query := `SELECT id, name FROM genres ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	var genres []entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&total); err != nil {
		r.log.Error("Failed to count genres", zap.Error(err))
		return 0, fmt.Errorf("count genres: %w", err)
	}
	return total, nil
}
