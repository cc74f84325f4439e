package service

import (
	"context"
	"fmt"
	"time"

	bookingdb "ms-showcase/internal/booking/db"
	"ms-showcase/internal/kafka"
	"ms-showcase/internal/logger"
	"ms-showcase/internal/models"
)

// ReferenceError reports which parent of a new show is missing.
type ReferenceError = bookingdb.ReferenceError

var (
	ErrNotFound         = bookingdb.ErrNotFound
	ErrInvalidReference = bookingdb.ErrInvalidReference
)

type BookingDBLayer interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
	SearchVenues(ctx context.Context, term string) ([]models.Venue, error)
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	GetVenueWithShows(ctx context.Context, id int64) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, venue *models.Venue) error
	DeleteVenue(ctx context.Context, id int64) (*models.Venue, error)

	ListArtists(ctx context.Context) ([]models.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]models.Artist, error)
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	GetArtistWithShows(ctx context.Context, id int64) (*models.Artist, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, artist *models.Artist) error
	DeleteArtist(ctx context.Context, id int64) (*models.Artist, error)

	ListShows(ctx context.Context) ([]models.Show, error)
	CreateShow(ctx context.Context, show *models.Show) error
}

type BookingService struct {
	DB     BookingDBLayer
	Events kafka.Publisher
	Log    *logger.Logger
	// Now is read once per operation so past/upcoming splits within one
	// response agree with each other.
	Now func() time.Time
}

func NewBookingService(db BookingDBLayer, events kafka.Publisher, log *logger.Logger) *BookingService {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	return &BookingService{DB: db, Events: events, Log: log, Now: time.Now}
}

func (s *BookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// publish runs after a committed write; a broker failure never fails the request.
func (s *BookingService) publish(ctx context.Context, eventType string, id int64, name string) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, kafka.NewEvent(eventType, id, name)); err != nil {
		s.Log.Warn("KAFKA", fmt.Sprintf("Failed to publish %s for %d: %v", eventType, id, err))
	}
}
