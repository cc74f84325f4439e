package service

import (
	"context"
	"fmt"

	"ms-showcase/internal/kafka"
	"ms-showcase/internal/models"
)

func (s *BookingService) ListShows(ctx context.Context) ([]ShowSlot, error) {
	shows, err := s.DB.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	slots := make([]ShowSlot, 0, len(shows))
	for i := range shows {
		slots = append(slots, toSlot(&shows[i]))
	}
	return slots, nil
}

// CreateShow inserts a show. ErrInvalidReference is returned when either
// parent does not exist.
func (s *BookingService) CreateShow(ctx context.Context, show *models.Show) error {
	if err := s.DB.CreateShow(ctx, show); err != nil {
		s.Log.Error("BOOKING", fmt.Sprintf("Show for artist %d at venue %d could not be listed: %v", show.ArtistID, show.VenueID, err))
		return fmt.Errorf("create show: %w", err)
	}
	s.Log.LogDatabase("INSERT", "shows", fmt.Sprintf("id=%d artist=%d venue=%d", show.ID, show.ArtistID, show.VenueID))
	s.publish(ctx, kafka.ShowCreated, show.ID, "")
	return nil
}
