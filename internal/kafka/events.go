package kafka

import (
	"context"
	"time"
)

// Event types published after a committed write.
const (
	VenueCreated    = "listings.venue.created"
	VenueUpdated    = "listings.venue.updated"
	VenueDeleted    = "listings.venue.deleted"
	ArtistCreated   = "listings.artist.created"
	ArtistUpdated   = "listings.artist.updated"
	ArtistDeleted   = "listings.artist.deleted"
	ShowCreated     = "listings.show.created"
	QuestionCreated = "trivia.question.created"
	QuestionDeleted = "trivia.question.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	ID         int64     `json:"id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, id int64, name string) Event {
	return Event{
		Type:       eventType,
		ID:         id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher streams change events. Implementations must be safe for
// concurrent use by request handlers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
