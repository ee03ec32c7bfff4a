package response

import (
	"time"

	"flixd/internal/usecase"
)

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CursorResponse struct {
	Kind       string    `json:"kind"`
	LastSyncAt time.Time `json:"last_sync_at"`
}

type RunReportResponse struct {
	RunID      string     `json:"run_id"`
	Kind       string     `json:"kind"`
	Mode       string     `json:"mode"`
	State      string     `json:"state"`
	Fetched    int        `json:"fetched"`
	Persisted  int        `json:"persisted"`
	Skipped    int        `json:"skipped"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type StatusResponse struct {
	Movies   int64               `json:"movies"`
	TVShows  int64               `json:"tvshows"`
	Genres   int64               `json:"genres"`
	Syncing  bool                `json:"syncing"`
	Cursors  []CursorResponse    `json:"cursors"`
	LastRuns []RunReportResponse `json:"last_runs"`
}

func RunReportToResponse(r usecase.RunReport) RunReportResponse {
	resp := RunReportResponse{
		RunID:     r.RunID.String(),
		Kind:      string(r.Kind),
		Mode:      string(r.Mode),
		State:     string(r.State),
		Fetched:   r.Fetched,
		Persisted: r.Persisted,
		Skipped:   r.Skipped,
		StartedAt: r.StartedAt,
		Error:     r.Error,
	}
	if !r.FinishedAt.IsZero() {
		finished := r.FinishedAt
		resp.FinishedAt = &finished
	}
	return resp
}
