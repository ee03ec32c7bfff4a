package usecase

import (
	"errors"
	"fmt"

	"flixd/internal/data/entity"
)

// ErrSyncInProgress guards the single-writer invariant: only one media
// sync may run at a time.
var ErrSyncInProgress = errors.New("a sync run is already in progress")

// FetchError is a listing or change-feed fetch that exhausted its
// retries. Fatal to the kind's run; partial results are discarded.
type FetchError struct {
	Kind entity.MediaKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s catalog: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EnrichError is a failed provider/trailer lookup for one identifier.
// The entity is skipped; the run continues.
type EnrichError struct {
	Kind entity.MediaKind
	ID   int64
	Err  error
}

func (e *EnrichError) Error() string {
	return fmt.Sprintf("enrich %s %d: %v", e.Kind, e.ID, e.Err)
}

func (e *EnrichError) Unwrap() error { return e.Err }

// PersistError is a failed entity upsert. The entity is skipped; the
// run continues.
type PersistError struct {
	Kind entity.MediaKind
	ID   int64
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s %d: %v", e.Kind, e.ID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// CursorError is a failed cursor advance. Fatal even when every entity
// succeeded: a run must not report success without recording its
// cursor, or the next delta silently loses data.
type CursorError struct {
	Kind entity.MediaKind
	Err  error
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("advance %s cursor: %v", e.Kind, e.Err)
}

func (e *CursorError) Unwrap() error { return e.Err }
