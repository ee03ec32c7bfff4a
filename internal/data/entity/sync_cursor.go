package entity

import (
	"time"
)

// SyncCursor holds the last successful sync time for one kind. A kind
// without a stored cursor starts from the Unix epoch, so the first
// delta run degenerates to "everything changed".
type SyncCursor struct {
	Kind       MediaKind `db:"kind"`
	LastSyncAt time.Time `db:"last_sync_at"`
}

// EpochCursor is the sentinel cursor for a kind that has never synced.
func EpochCursor(kind MediaKind) *SyncCursor {
	return &SyncCursor{
		Kind:       kind,
		LastSyncAt: time.Unix(0, 0).UTC(),
	}
}
