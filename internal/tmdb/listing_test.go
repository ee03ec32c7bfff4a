package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"flixd/internal/data/entity"

	"github.com/stretchr/testify/require"
)

func TestPopularWalksAllPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprintf(w, `{
			"page": %d,
			"total_pages": 3,
			"total_results": 6,
			"results": [
				{"id": %d, "title": "Movie %d", "vote_average": 7.1},
				{"id": %d, "title": "Movie %d", "vote_average": 6.4}
			]
		}`, page, page*10, page*10, page*10+1, page*10+1)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	items, err := c.Popular(context.Background(), entity.MediaKindMovie)

	require.NoError(t, err)
	require.Len(t, items, 6)
	require.Equal(t, int64(10), items[0].ID)
	require.Equal(t, int64(31), items[5].ID)
}

func TestPopularStopsAtPageCap(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprintf(w, `{
			"page": %d,
			"total_pages": 5000,
			"results": [{"id": %d, "title": "Movie"}]
		}`, page, page)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	items, err := c.Popular(context.Background(), entity.MediaKindMovie)

	require.NoError(t, err)
	require.Len(t, items, 1000)
	require.Equal(t, int32(1000), calls.Load())
}

func TestPopularRejectsMalformedItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Second item has no identifier
		w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"results": [
				{"id": 1, "title": "Fine"},
				{"title": "Broken"}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	_, err := c.Popular(context.Background(), entity.MediaKindMovie)

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid listing item")
}

func TestPopularRejectsMissingTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"results": [{"id": 42, "vote_average": 5.0}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	_, err := c.Popular(context.Background(), entity.MediaKindMovie)

	require.Error(t, err)
	require.Contains(t, err.Error(), "missing title")
}

func TestPopularFailsWholeFetchOnPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{
			"page": %d,
			"total_pages": 3,
			"results": [{"id": %d, "title": "Movie"}]
		}`, page, page)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	items, err := c.Popular(context.Background(), entity.MediaKindMovie)

	require.Error(t, err)
	require.Contains(t, err.Error(), "page 2")
	require.Nil(t, items)
}

func TestDetailsHydratesOneID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/55", r.URL.Path)
		w.Write([]byte(`{
			"id": 55,
			"name": "Some Show",
			"first_air_date": "2019-03-14",
			"genres": [{"id": 18, "name": "Drama"}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	item, err := c.Details(context.Background(), entity.MediaKindTV, 55)

	require.NoError(t, err)
	require.Equal(t, int64(55), item.ID)
	require.Equal(t, "Some Show", item.Name)

	media := item.ToMedia(entity.MediaKindTV)
	require.Equal(t, "Some Show", media.Title)
	require.Equal(t, []int64{18}, media.GenreIDs)
	require.NotNil(t, media.ReleaseDate)
	require.Equal(t, "2019-03-14", media.ReleaseDate.Format("2006-01-02"))
}

func TestDetailsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	_, err := c.Details(context.Background(), entity.MediaKindMovie, 404404)

	require.ErrorIs(t, err, ErrNotFound)
}
