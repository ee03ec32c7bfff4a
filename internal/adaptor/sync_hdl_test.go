package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flixd/internal/data/entity"
	"flixd/internal/data/repository"
	"flixd/internal/usecase"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSyncService struct {
	inProgress bool
	reports    []usecase.RunReport
	fullRuns   chan struct{}
	deltaRuns  chan struct{}
}

func (f *fakeSyncService) FullSync(_ context.Context) ([]usecase.RunReport, error) {
	if f.fullRuns != nil {
		f.fullRuns <- struct{}{}
	}
	return f.reports, nil
}

func (f *fakeSyncService) DeltaSync(_ context.Context) ([]usecase.RunReport, error) {
	if f.deltaRuns != nil {
		f.deltaRuns <- struct{}{}
	}
	return f.reports, nil
}

func (f *fakeSyncService) LastReports() []usecase.RunReport { return f.reports }
func (f *fakeSyncService) InProgress() bool                 { return f.inProgress }

type fakeGenreService struct {
	runs chan struct{}
	err  error
}

func (f *fakeGenreService) Sync(_ context.Context) (int, error) {
	if f.runs != nil {
		f.runs <- struct{}{}
	}
	return 0, f.err
}

type fakeMediaRepo struct {
	counts map[entity.MediaKind]int64
	err    error
}

func (f *fakeMediaRepo) Upsert(_ context.Context, _ *entity.Media) error { return nil }

func (f *fakeMediaRepo) CountByKind(_ context.Context, kind entity.MediaKind) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[kind], nil
}

type fakeGenreRepo struct {
	genres []entity.Genre
	err    error
}

func (f *fakeGenreRepo) UpsertAll(_ context.Context, _ []entity.Genre) error { return nil }

func (f *fakeGenreRepo) FindAll(_ context.Context) ([]entity.Genre, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.genres, nil
}

func (f *fakeGenreRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.genres)), nil
}

type fakeCursorRepo struct{}

func (f *fakeCursorRepo) Get(_ context.Context, kind entity.MediaKind) (*entity.SyncCursor, error) {
	return entity.EpochCursor(kind), nil
}

func (f *fakeCursorRepo) Advance(_ context.Context, _ entity.MediaKind, _ time.Time) error {
	return nil
}

func newTestHandler(sync *fakeSyncService, genre *fakeGenreService, media *fakeMediaRepo, genreRepo *fakeGenreRepo) *SyncHandler {
	repo := &repository.Repository{
		Media:  media,
		Genre:  genreRepo,
		Cursor: &fakeCursorRepo{},
	}
	return NewSyncHandler(context.Background(), sync, genre, repo, zap.NewNop())
}

func TestGetStatus(t *testing.T) {
	sync := &fakeSyncService{inProgress: true}
	media := &fakeMediaRepo{counts: map[entity.MediaKind]int64{
		entity.MediaKindMovie: 120,
		entity.MediaKindTV:    45,
	}}
	genreRepo := &fakeGenreRepo{genres: []entity.Genre{{ID: 28, Name: "Action"}}}
	h := newTestHandler(sync, &fakeGenreService{}, media, genreRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	h.GetStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			Movies  int64 `json:"movies"`
			TVShows int64 `json:"tvshows"`
			Genres  int64 `json:"genres"`
			Syncing bool  `json:"syncing"`
			Cursors []struct {
				Kind string `json:"kind"`
			} `json:"cursors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Status)
	require.Equal(t, int64(120), body.Data.Movies)
	require.Equal(t, int64(45), body.Data.TVShows)
	require.Equal(t, int64(1), body.Data.Genres)
	require.True(t, body.Data.Syncing)
	require.Len(t, body.Data.Cursors, 2)
	require.Equal(t, "movie", body.Data.Cursors[0].Kind)
	require.Equal(t, "tv", body.Data.Cursors[1].Kind)
}

func TestGetStatusCountFailure(t *testing.T) {
	media := &fakeMediaRepo{err: errors.New("db down")}
	h := newTestHandler(&fakeSyncService{}, &fakeGenreService{}, media, &fakeGenreRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	h.GetStatus(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetGenres(t *testing.T) {
	genreRepo := &fakeGenreRepo{genres: []entity.Genre{
		{ID: 28, Name: "Action"},
		{ID: 35, Name: "Comedy"},
	}}
	h := newTestHandler(&fakeSyncService{}, &fakeGenreService{}, &fakeMediaRepo{}, genreRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
	rec := httptest.NewRecorder()
	h.GetGenres(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, "Action", body.Data[0].Name)
}

func TestTriggerRejectsWhileInProgress(t *testing.T) {
	sync := &fakeSyncService{inProgress: true}
	h := newTestHandler(sync, &fakeGenreService{}, &fakeMediaRepo{}, &fakeGenreRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/delta", nil)
	rec := httptest.NewRecorder()
	h.TriggerDelta(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestTriggerDeltaRunsInBackground(t *testing.T) {
	sync := &fakeSyncService{deltaRuns: make(chan struct{}, 1)}
	h := newTestHandler(sync, &fakeGenreService{}, &fakeMediaRepo{}, &fakeGenreRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/delta", nil)
	rec := httptest.NewRecorder()
	h.TriggerDelta(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case <-sync.deltaRuns:
	case <-time.After(time.Second):
		t.Fatal("delta run was not started")
	}
}

func TestTriggerFullRunsGenresFirst(t *testing.T) {
	sync := &fakeSyncService{fullRuns: make(chan struct{}, 1)}
	genre := &fakeGenreService{runs: make(chan struct{}, 1)}
	h := newTestHandler(sync, genre, &fakeMediaRepo{}, &fakeGenreRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sync/full", nil)
	rec := httptest.NewRecorder()
	h.TriggerFull(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case <-genre.runs:
	case <-time.After(time.Second):
		t.Fatal("genre sync was not started")
	}
	select {
	case <-sync.fullRuns:
	case <-time.After(time.Second):
		t.Fatal("full sync was not started")
	}
}
