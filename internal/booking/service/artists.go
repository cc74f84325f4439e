package service

import (
	"context"
	"fmt"

	"ms-showcase/internal/kafka"
	"ms-showcase/internal/models"
)

// ListArtists returns id and name of every artist, ordered by id.
func (s *BookingService) ListArtists(ctx context.Context) ([]Summary, error) {
	artists, err := s.DB.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	out := make([]Summary, 0, len(artists))
	for _, a := range artists {
		out = append(out, Summary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

func (s *BookingService) SearchArtists(ctx context.Context, term string) (*SearchResult, error) {
	artists, err := s.DB.SearchArtists(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	now := s.now()
	result := &SearchResult{Data: make([]Summary, 0, len(artists))}
	for i := range artists {
		result.Data = append(result.Data, Summary{
			ID:               artists[i].ID,
			Name:             artists[i].Name,
			NumUpcomingShows: CountUpcoming(artists[i].Shows, now),
		})
	}
	result.Count = len(result.Data)
	return result, nil
}

func (s *BookingService) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	return s.DB.GetArtistByID(ctx, id)
}

func (s *BookingService) GetArtistDetail(ctx context.Context, id int64) (*ArtistDetail, error) {
	artist, err := s.DB.GetArtistWithShows(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, show := range artist.Shows {
		show.Artist = artist
	}

	past, upcoming := PartitionShows(artist.Shows, s.now())
	return &ArtistDetail{
		Artist:             artist,
		GenreNames:         artist.GenreList(),
		PastShows:          toSlots(past),
		UpcomingShows:      toSlots(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *BookingService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if err := s.DB.CreateArtist(ctx, artist); err != nil {
		s.Log.Error("BOOKING", fmt.Sprintf("Artist %s could not be listed: %v", artist.Name, err))
		return fmt.Errorf("create artist %q: %w", artist.Name, err)
	}
	s.Log.LogDatabase("INSERT", "artists", fmt.Sprintf("id=%d name=%s", artist.ID, artist.Name))
	s.publish(ctx, kafka.ArtistCreated, artist.ID, artist.Name)
	return nil
}

func (s *BookingService) UpdateArtist(ctx context.Context, id int64, update models.Artist) (*models.Artist, error) {
	artist, err := s.DB.GetArtistByID(ctx, id)
	if err != nil {
		return nil, err
	}

	artist.Name = update.Name
	artist.City = update.City
	artist.State = update.State
	artist.Phone = update.Phone
	artist.Genres = update.Genres
	artist.ImageLink = update.ImageLink
	artist.WebsiteLink = update.WebsiteLink
	artist.FacebookLink = update.FacebookLink
	artist.SeekingVenue = update.SeekingVenue
	artist.SeekingDescription = update.SeekingDescription

	if err := s.DB.UpdateArtist(ctx, artist); err != nil {
		s.Log.Error("BOOKING", fmt.Sprintf("Artist %s could not be edited: %v", artist.Name, err))
		return nil, fmt.Errorf("update artist %d: %w", id, err)
	}
	s.publish(ctx, kafka.ArtistUpdated, artist.ID, artist.Name)
	return artist, nil
}

func (s *BookingService) DeleteArtist(ctx context.Context, id int64) (*Deleted, error) {
	artist, err := s.DB.DeleteArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Log.LogDatabase("DELETE", "artists", fmt.Sprintf("id=%d name=%s", artist.ID, artist.Name))
	s.publish(ctx, kafka.ArtistDeleted, artist.ID, artist.Name)
	return &Deleted{ID: artist.ID, Name: artist.Name}, nil
}
