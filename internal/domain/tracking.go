package domain

import "time"

// Datum is one logged performance data point.
type Datum struct {
	ID    ID        `json:"id"`
	User  ID        `json:"user"`
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	CDate time.Time `json:"cdate"`
}

// SortOption selects the ordering of a tracked-data query.
type SortOption int

const (
	SortNone SortOption = iota
	SortByScore
	SortByDate
)

// DatumFilter narrows a tracked-data query. Zero values mean "no filter".
type DatumFilter struct {
	User  ID
	Start *time.Time
	End   *time.Time
	Sort  SortOption
}
