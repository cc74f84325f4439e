package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Show joins an artist to a venue at a point in time. Its rows are removed
// together with either parent.
type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ArtistID  int64     `bun:"artist_id,notnull" json:"artist_id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`

	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
}

// IsUpcoming reports whether the show has not started yet at now.
// A show starting exactly at now counts as upcoming.
func (s *Show) IsUpcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}
