package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"flixd/internal/data/entity"
	"flixd/internal/data/repository"
	"flixd/internal/tmdb"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SyncMode string

const (
	ModeFull  SyncMode = "full"
	ModeDelta SyncMode = "delta"
)

// RunState tracks a kind-level run through its lifecycle. Failed is
// reachable from any non-terminal state.
type RunState string

const (
	StateIdle                RunState = "idle"
	StateFetchingIdentifiers RunState = "fetching_identifiers"
	StateEnriching           RunState = "enriching"
	StatePersisting          RunState = "persisting"
	StateAdvancingCursor     RunState = "advancing_cursor"
	StateDone                RunState = "done"
	StateFailed              RunState = "failed"
)

// RunReport is the outcome of one kind-level run. Per-entity skips show
// up in Skipped and in the logs, never as a run failure.
type RunReport struct {
	RunID      uuid.UUID
	Kind       entity.MediaKind
	Mode       SyncMode
	State      RunState
	Fetched    int
	Persisted  int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

type SyncService interface {
	// FullSync re-fetches the entire listing for every kind. Returns
	// the per-kind reports and a non-nil error if any kind failed.
	FullSync(ctx context.Context) ([]RunReport, error)
	// DeltaSync fetches only entities changed since each kind's cursor.
	DeltaSync(ctx context.Context) ([]RunReport, error)
	LastReports() []RunReport
	InProgress() bool
}

type syncService struct {
	repo    *repository.Repository
	api     CatalogAPI
	workers int
	log     *zap.Logger

	running atomic.Bool
	mu      sync.Mutex
	last    []RunReport
}

func NewSyncService(repo *repository.Repository, api CatalogAPI, workers int, log *zap.Logger) SyncService {
	if workers < 1 {
		workers = 1
	}
	return &syncService{
		repo:    repo,
		api:     api,
		workers: workers,
		log:     log.With(zap.String("service", "sync")),
	}
}

func (s *syncService) FullSync(ctx context.Context) ([]RunReport, error) {
	return s.syncAll(ctx, ModeFull)
}

func (s *syncService) DeltaSync(ctx context.Context) ([]RunReport, error) {
	return s.syncAll(ctx, ModeDelta)
}

func (s *syncService) InProgress() bool {
	return s.running.Load()
}

func (s *syncService) LastReports() []RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := make([]RunReport, len(s.last))
	copy(reports, s.last)
	return reports
}

// syncAll runs both kinds sequentially. Kind runs are independent: one
// kind failing never aborts the other.
func (s *syncService) syncAll(ctx context.Context, mode SyncMode) ([]RunReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	var reports []RunReport
	var errs []error

	for _, kind := range entity.Kinds() {
		report := s.run(ctx, kind, mode)
		reports = append(reports, report)
		if report.State == StateFailed {
			errs = append(errs, fmt.Errorf("%s %s sync failed: %s", kind, mode, report.Error))
		}
	}

	s.mu.Lock()
	s.last = reports
	s.mu.Unlock()

	return reports, errors.Join(errs...)
}

type syncJob struct {
	id   int64
	item *tmdb.ListingItem
}

// run drives one kind through the state machine. The cursor target is
// the run's start time, so entities changed mid-run are picked up again
// by the next delta.
func (s *syncService) run(ctx context.Context, kind entity.MediaKind, mode SyncMode) RunReport {
	report := RunReport{
		RunID:     uuid.New(),
		Kind:      kind,
		Mode:      mode,
		State:     StateFetchingIdentifiers,
		StartedAt: time.Now().UTC(),
	}

	log := s.log.With(
		zap.String("run_id", report.RunID.String()),
		zap.String("kind", string(kind)),
		zap.String("mode", string(mode)),
	)
	log.Info("Sync run started")

	queue, err := s.fetchQueue(ctx, kind, mode)
	if err != nil {
		return s.fail(log, report, &FetchError{Kind: kind, Err: err})
	}
	report.Fetched = len(queue)

	report.State = StateEnriching
	var persisted, skipped atomic.Int64

	jobs := make(chan syncJob)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				s.process(ctx, log, kind, job, &persisted, &skipped)
			}
		}()
	}

feed:
	for _, job := range queue {
		select {
		case jobs <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	report.State = StatePersisting
	wg.Wait()

	report.Persisted = int(persisted.Load())
	report.Skipped = int(skipped.Load())

	// A cancelled run must not advance the cursor
	if err := ctx.Err(); err != nil {
		return s.fail(log, report, err)
	}

	report.State = StateAdvancingCursor
	if err := s.repo.Cursor.Advance(ctx, kind, report.StartedAt); err != nil {
		return s.fail(log, report, &CursorError{Kind: kind, Err: err})
	}

	report.State = StateDone
	report.FinishedAt = time.Now().UTC()
	log.Info("Sync run finished",
		zap.Int("fetched", report.Fetched),
		zap.Int("persisted", report.Persisted),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

// fetchQueue resolves the identifiers to process. Full mode walks the
// listing (items arrive fully hydrated); delta mode reads the cursor
// and resolves the change feed (items are hydrated later, per id).
func (s *syncService) fetchQueue(ctx context.Context, kind entity.MediaKind, mode SyncMode) ([]syncJob, error) {
	if mode == ModeFull {
		items, err := s.api.Popular(ctx, kind)
		if err != nil {
			return nil, err
		}
		queue := make([]syncJob, len(items))
		for i := range items {
			queue[i] = syncJob{id: items[i].ID, item: &items[i]}
		}
		return queue, nil
	}

	cursor, err := s.repo.Cursor.Get(ctx, kind)
	if err != nil {
		return nil, err
	}

	ids, err := s.api.ChangedIDs(ctx, kind, cursor.LastSyncAt)
	if err != nil {
		return nil, err
	}

	queue := make([]syncJob, len(ids))
	for i, id := range ids {
		queue[i] = syncJob{id: id}
	}
	return queue, nil
}

// process handles one entity end to end: hydrate (delta only), enrich,
// normalize, persist. Every failure here is entity-level: log, count a
// skip, move on.
func (s *syncService) process(ctx context.Context, log *zap.Logger, kind entity.MediaKind, job syncJob, persisted, skipped *atomic.Int64) {
	if ctx.Err() != nil {
		skipped.Add(1)
		return
	}

	item := job.item
	if item == nil {
		hydrated, err := s.api.Details(ctx, kind, job.id)
		if err != nil {
			if errors.Is(err, tmdb.ErrNotFound) {
				log.Info("Entity gone upstream, skipping", zap.Int64("id", job.id))
			} else {
				log.Warn("Skipping entity", zap.Error(&EnrichError{Kind: kind, ID: job.id, Err: err}))
			}
			skipped.Add(1)
			return
		}
		item = hydrated
	}

	services, err := s.api.StreamingServices(ctx, kind, item.ID)
	if err != nil {
		log.Warn("Skipping entity", zap.Error(&EnrichError{Kind: kind, ID: item.ID, Err: err}))
		skipped.Add(1)
		return
	}

	trailer, err := s.api.TrailerURL(ctx, kind, item.ID)
	if err != nil {
		log.Warn("Skipping entity", zap.Error(&EnrichError{Kind: kind, ID: item.ID, Err: err}))
		skipped.Add(1)
		return
	}

	media := item.ToMedia(kind)
	media.StreamingServices = services
	media.TrailerURL = trailer
	media.UpdatedAt = time.Now().UTC()

	if err := s.repo.Media.Upsert(ctx, &media); err != nil {
		log.Warn("Skipping entity", zap.Error(&PersistError{Kind: kind, ID: item.ID, Err: err}))
		skipped.Add(1)
		return
	}

	persisted.Add(1)
}

func (s *syncService) fail(log *zap.Logger, report RunReport, err error) RunReport {
	report.State = StateFailed
	report.Error = err.Error()
	report.FinishedAt = time.Now().UTC()
	log.Error("Sync run failed",
		zap.Error(err),
		zap.Int("fetched", report.Fetched),
		zap.Int("persisted", report.Persisted),
		zap.Int("skipped", report.Skipped),
	)
	return report
}
