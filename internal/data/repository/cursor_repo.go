package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flixd/internal/data/entity"
	"flixd/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SyncCursorRepository interface {
	// Get returns the cursor for a kind. A kind that has never synced
	// gets the epoch sentinel, not an error.
	Get(ctx context.Context, kind entity.MediaKind) (*entity.SyncCursor, error)
	// Advance moves the cursor forward, creating the row on first run.
	Advance(ctx context.Context, kind entity.MediaKind, ts time.Time) error
}

type syncCursorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSyncCursorRepository(db database.PgxIface, log *zap.Logger) SyncCursorRepository {
	return &syncCursorRepository{
		db:  db,
		log: log.With(zap.String("repository", "sync_cursor")),
	}
}

func (r *syncCursorRepository) Get(ctx context.Context, kind entity.MediaKind) (*entity.SyncCursor, error) {
	query := `SELECT last_sync_at FROM sync_cursors WHERE kind = $1`

	cursor := entity.SyncCursor{Kind: kind}
	err := r.db.QueryRow(ctx, query, string(kind)).Scan(&cursor.LastSyncAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return entity.EpochCursor(kind), nil
	}
	if err != nil {
		r.log.Error("Failed to read sync cursor",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("read cursor for %s: %w", kind, err)
	}

	return &cursor, nil
}

func (r *syncCursorRepository) Advance(ctx context.Context, kind entity.MediaKind, ts time.Time) error {
	query := `
		INSERT INTO sync_cursors (kind, last_sync_at)
		VALUES ($1, $2)
		ON CONFLICT (kind) DO UPDATE SET last_sync_at = EXCLUDED.last_sync_at
	`

	if _, err := r.db.Exec(ctx, query, string(kind), ts); err != nil {
		r.log.Error("Failed to advance sync cursor",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.Time("last_sync_at", ts),
		)
		return fmt.Errorf("advance cursor for %s: %w", kind, err)
	}

	r.log.Info("Sync cursor advanced",
		zap.String("kind", string(kind)),
		zap.Time("last_sync_at", ts),
	)
	return nil
}
