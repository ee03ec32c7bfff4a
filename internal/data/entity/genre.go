package entity

// Genre identifiers are shared between the movie and TV vocabularies
// upstream, so one table holds the merged set.
type Genre struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
