package entity

import (
	"time"
)

type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// Kinds returns the catalog kinds in sync order (movies first).
func Kinds() []MediaKind {
	return []MediaKind{MediaKindMovie, MediaKindTV}
}

func (k MediaKind) Valid() bool {
	return k == MediaKindMovie || k == MediaKindTV
}

// Media is one catalog entry, identified by (Kind, ID). ID is the
// upstream catalog identifier, unique within its kind.
type Media struct {
	ID                int64      `db:"id"`
	Kind              MediaKind  `db:"-"`
	Title             string     `db:"title"`
	Overview          *string    `db:"overview"`
	ReleaseDate       *time.Time `db:"release_date"`
	PosterPath        *string    `db:"poster_path"`
	BackdropPath      *string    `db:"backdrop_path"`
	Popularity        float64    `db:"popularity"`
	VoteAverage       float64    `db:"vote_average"`
	VoteCount         int        `db:"vote_count"`
	GenreIDs          []int64    `db:"genre_ids"`
	OriginalLanguage  string     `db:"original_language"`
	Adult             bool       `db:"adult"` // movie only
	Video             bool       `db:"video"` // movie only
	StreamingServices []string   `db:"streaming_services"`
	TrailerURL        *string    `db:"trailer_url"`
	UpdatedAt         time.Time  `db:"updated_at"`
}
