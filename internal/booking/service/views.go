package service

import (
	"time"

	"ms-showcase/internal/models"
)

// Summary is the minimal row shown in listings and search results.
type Summary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}

// ShowSlot is a show flattened with the display fields of both parents.
type ShowSlot struct {
	ShowID          int64     `json:"show_id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	VenueImageLink  string    `json:"venue_image_link"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

type VenueDetail struct {
	*models.Venue
	GenreNames         []string   `json:"genres"`
	PastShows          []ShowSlot `json:"past_shows"`
	UpcomingShows      []ShowSlot `json:"upcoming_shows"`
	PastShowsCount     int        `json:"past_shows_count"`
	UpcomingShowsCount int        `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	*models.Artist
	GenreNames         []string   `json:"genres"`
	PastShows          []ShowSlot `json:"past_shows"`
	UpcomingShows      []ShowSlot `json:"upcoming_shows"`
	PastShowsCount     int        `json:"past_shows_count"`
	UpcomingShowsCount int        `json:"upcoming_shows_count"`
}

// Deleted is the confirmation payload returned by delete endpoints.
type Deleted struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GroupVenuesByArea folds venues, already ordered by city and state, into
// areas. Only consecutive venues share an area: a (city, state) pair that
// reappears later in the input opens a second area.
func GroupVenuesByArea(venues []models.Venue, now time.Time) []Area {
	areas := make([]Area, 0)
	for i := range venues {
		v := &venues[i]
		last := len(areas) - 1
		if last < 0 || areas[last].City != v.City || areas[last].State != v.State {
			areas = append(areas, Area{City: v.City, State: v.State})
			last++
		}
		areas[last].Venues = append(areas[last].Venues, Summary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: CountUpcoming(v.Shows, now),
		})
	}
	return areas
}

// CountUpcoming counts shows starting strictly after now.
func CountUpcoming(shows []*models.Show, now time.Time) int {
	n := 0
	for _, show := range shows {
		if show.StartTime.After(now) {
			n++
		}
	}
	return n
}

// PartitionShows splits shows into those before now and those at or after
// now, keeping input order in both halves.
func PartitionShows(shows []*models.Show, now time.Time) (past, upcoming []*models.Show) {
	for _, show := range shows {
		if show.IsUpcoming(now) {
			upcoming = append(upcoming, show)
		} else {
			past = append(past, show)
		}
	}
	return past, upcoming
}

func toSlot(show *models.Show) ShowSlot {
	slot := ShowSlot{
		ShowID:    show.ID,
		VenueID:   show.VenueID,
		ArtistID:  show.ArtistID,
		StartTime: show.StartTime,
	}
	if show.Venue != nil {
		slot.VenueName = show.Venue.Name
		slot.VenueImageLink = show.Venue.ImageLink
	}
	if show.Artist != nil {
		slot.ArtistName = show.Artist.Name
		slot.ArtistImageLink = show.Artist.ImageLink
	}
	return slot
}

func toSlots(shows []*models.Show) []ShowSlot {
	slots := make([]ShowSlot, 0, len(shows))
	for _, show := range shows {
		slots = append(slots, toSlot(show))
	}
	return slots
}
