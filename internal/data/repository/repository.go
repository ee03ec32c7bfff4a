package repository

import (
	"flixd/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Media  MediaRepository
	Genre  GenreRepository
	Cursor SyncCursorRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Media:  NewMediaRepository(db, log),
		Genre:  NewGenreRepository(db, log),
		Cursor: NewSyncCursorRepository(db, log),
	}
}
