package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Migrate bootstraps the catalog schema. Statements are idempotent so
// the service can run them on every startup.
func Migrate(ctx context.Context, db PgxIface, log *zap.Logger) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			overview TEXT,
			release_date DATE,
			poster_path TEXT,
			backdrop_path TEXT,
			popularity DOUBLE PRECISION NOT NULL DEFAULT 0,
			vote_average DOUBLE PRECISION NOT NULL DEFAULT 0,
			vote_count INTEGER NOT NULL DEFAULT 0,
			genre_ids BIGINT[] NOT NULL DEFAULT '{}',
			original_language TEXT NOT NULL DEFAULT '',
			adult BOOLEAN NOT NULL DEFAULT FALSE,
			video BOOLEAN NOT NULL DEFAULT FALSE,
			streaming_services TEXT[] NOT NULL DEFAULT '{}',
			trailer_url TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tvshows (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			overview TEXT,
			first_air_date DATE,
			poster_path TEXT,
			backdrop_path TEXT,
			popularity DOUBLE PRECISION NOT NULL DEFAULT 0,
			vote_average DOUBLE PRECISION NOT NULL DEFAULT 0,
			vote_count INTEGER NOT NULL DEFAULT 0,
			genre_ids BIGINT[] NOT NULL DEFAULT '{}',
			original_language TEXT NOT NULL DEFAULT '',
			streaming_services TEXT[] NOT NULL DEFAULT '{}',
			trailer_url TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sync_cursors (
			kind TEXT PRIMARY KEY,
			last_sync_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies (popularity DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tvshows_popularity ON tvshows (popularity DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}

	log.Info("Database schema ready")
	return nil
}
