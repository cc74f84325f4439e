package service

import (
	"context"
	"fmt"

	"ms-showcase/internal/kafka"
	"ms-showcase/internal/models"
)

// ListAreas returns every venue grouped by city and state.
func (s *BookingService) ListAreas(ctx context.Context) ([]Area, error) {
	venues, err := s.DB.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return GroupVenuesByArea(venues, s.now()), nil
}

func (s *BookingService) SearchVenues(ctx context.Context, term string) (*SearchResult, error) {
	venues, err := s.DB.SearchVenues(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	now := s.now()
	result := &SearchResult{Data: make([]Summary, 0, len(venues))}
	for i := range venues {
		result.Data = append(result.Data, Summary{
			ID:               venues[i].ID,
			Name:             venues[i].Name,
			NumUpcomingShows: CountUpcoming(venues[i].Shows, now),
		})
	}
	result.Count = len(result.Data)
	return result, nil
}

func (s *BookingService) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	return s.DB.GetVenueByID(ctx, id)
}

func (s *BookingService) GetVenueDetail(ctx context.Context, id int64) (*VenueDetail, error) {
	venue, err := s.DB.GetVenueWithShows(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, show := range venue.Shows {
		show.Venue = venue
	}

	past, upcoming := PartitionShows(venue.Shows, s.now())
	return &VenueDetail{
		Venue:              venue,
		GenreNames:         venue.GenreList(),
		PastShows:          toSlots(past),
		UpcomingShows:      toSlots(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *BookingService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	if err := s.DB.CreateVenue(ctx, venue); err != nil {
		s.Log.Error("BOOKING", fmt.Sprintf("Venue %s could not be listed: %v", venue.Name, err))
		return fmt.Errorf("create venue %q: %w", venue.Name, err)
	}
	s.Log.LogDatabase("INSERT", "venues", fmt.Sprintf("id=%d name=%s", venue.ID, venue.Name))
	s.publish(ctx, kafka.VenueCreated, venue.ID, venue.Name)
	return nil
}

// UpdateVenue overwrites every mutable field of venue id with the values in
// update.
func (s *BookingService) UpdateVenue(ctx context.Context, id int64, update models.Venue) (*models.Venue, error) {
	venue, err := s.DB.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue.Name = update.Name
	venue.City = update.City
	venue.State = update.State
	venue.Address = update.Address
	venue.Phone = update.Phone
	venue.Genres = update.Genres
	venue.ImageLink = update.ImageLink
	venue.WebsiteLink = update.WebsiteLink
	venue.FacebookLink = update.FacebookLink
	venue.SeekingTalent = update.SeekingTalent
	venue.SeekingDescription = update.SeekingDescription

	if err := s.DB.UpdateVenue(ctx, venue); err != nil {
		s.Log.Error("BOOKING", fmt.Sprintf("Venue %s could not be edited: %v", venue.Name, err))
		return nil, fmt.Errorf("update venue %d: %w", id, err)
	}
	s.publish(ctx, kafka.VenueUpdated, venue.ID, venue.Name)
	return venue, nil
}

func (s *BookingService) DeleteVenue(ctx context.Context, id int64) (*Deleted, error) {
	venue, err := s.DB.DeleteVenue(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Log.LogDatabase("DELETE", "venues", fmt.Sprintf("id=%d name=%s", venue.ID, venue.Name))
	s.publish(ctx, kafka.VenueDeleted, venue.ID, venue.Name)
	return &Deleted{ID: venue.ID, Name: venue.Name}, nil
}
