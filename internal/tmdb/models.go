package tmdb

import (
	"fmt"
	"time"

	"flixd/internal/data/entity"
	"flixd/pkg/utils"
)

// pagedResponse is the envelope every paginated TMDB endpoint uses.
type pagedResponse[T any] struct {
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Results      []T `json:"results"`
}

// ListingItem is one entry of a listing page. Movie and TV payloads
// share the shape except for the title and date field names, so both
// pairs are declared and resolved per kind in ToMedia.
type ListingItem struct {
	ID               int64        `json:"id" validate:"required"`
	Title            string       `json:"title"`
	Name             string       `json:"name"`
	Overview         string       `json:"overview"`
	ReleaseDate      string       `json:"release_date"`
	FirstAirDate     string       `json:"first_air_date"`
	PosterPath       *string      `json:"poster_path"`
	BackdropPath     *string      `json:"backdrop_path"`
	Popularity       float64      `json:"popularity"`
	VoteAverage      float64      `json:"vote_average" validate:"min=0,max=10"`
	VoteCount        int          `json:"vote_count"`
	GenreIDs         []int64      `json:"genre_ids"`
	OriginalLanguage string       `json:"original_language"`
	Adult            bool         `json:"adult"`
	Video            bool         `json:"video"`
	Genres           []genreEntry `json:"genres"` // details endpoint only
}

// Validate rejects malformed listing payloads before they reach the store.
func (it *ListingItem) Validate() error {
	if errs := utils.ValidateStruct(it); len(errs) > 0 {
		return fmt.Errorf("invalid listing item: %s", utils.FormatValidationErrors(errs))
	}
	if it.Title == "" && it.Name == "" {
		return fmt.Errorf("invalid listing item %d: missing title", it.ID)
	}
	return nil
}

// ToMedia normalizes a listing item into a catalog entity. Enrichment
// fields (streaming services, trailer) are filled in by the caller.
func (it *ListingItem) ToMedia(kind entity.MediaKind) entity.Media {
	m := entity.Media{
		ID:               it.ID,
		Kind:             kind,
		Overview:         optString(it.Overview),
		PosterPath:       it.PosterPath,
		BackdropPath:     it.BackdropPath,
		Popularity:       it.Popularity,
		VoteAverage:      it.VoteAverage,
		VoteCount:        it.VoteCount,
		GenreIDs:         it.GenreIDs,
		OriginalLanguage: it.OriginalLanguage,
	}

	switch kind {
	case entity.MediaKindTV:
		m.Title = it.Name
		m.ReleaseDate = optDate(it.FirstAirDate)
	default:
		m.Title = it.Title
		m.ReleaseDate = optDate(it.ReleaseDate)
		m.Adult = it.Adult
		m.Video = it.Video
	}

	// Details payloads carry expanded genres instead of genre_ids
	if len(m.GenreIDs) == 0 && len(it.Genres) > 0 {
		ids := make([]int64, len(it.Genres))
		for i, g := range it.Genres {
			ids[i] = g.ID
		}
		m.GenreIDs = ids
	}

	return m
}

// changeEntry is one row of the /{kind}/changes endpoint.
type changeEntry struct {
	ID    int64 `json:"id" validate:"required"`
	Adult *bool `json:"adult"`
}

// genreEntry mirrors the upstream genre vocabulary rows.
type genreEntry struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type genreListResponse struct {
	Genres []genreEntry `json:"genres"`
}

// providerEntry is one streaming offer inside a region block.
type providerEntry struct {
	ProviderID      int64  `json:"provider_id"`
	ProviderName    string `json:"provider_name" validate:"required"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// regionOffers groups a region's offers by monetization tier.
type regionOffers struct {
	Link     string          `json:"link"`
	Flatrate []providerEntry `json:"flatrate"`
	Ads      []providerEntry `json:"ads"`
	Free     []providerEntry `json:"free"`
}

type providersResponse struct {
	ID      int64                   `json:"id"`
	Results map[string]regionOffers `json:"results"`
}

// videoEntry is one row of the /{kind}/{id}/videos endpoint.
type videoEntry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

type videosResponse struct {
	ID      int64        `json:"id"`
	Results []videoEntry `json:"results"`
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
