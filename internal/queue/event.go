// Package queue defines the domain events the directory emits and the
// RabbitMQ publisher and consumer that carry them.
package queue

import (
    "encoding/json"
    "fmt"
    "time"
)

// Event types published after a successful commit.
const (
    TypeShowListed    = "show.listed"
    TypeVenueListed   = "venue.listed"
    TypeVenueDeleted  = "venue.deleted"
    TypeArtistListed  = "artist.listed"
    TypeArtistDeleted = "artist.deleted"
)

// Event is the envelope written to the broker.  Payload holds one of the
// typed payloads below, encoded as JSON.
type Event struct {
    Type       string          `json:"type"`
    OccurredAt string          `json:"occurred_at"`
    Payload    json.RawMessage `json:"payload"`
}

// ShowListedEvent is published when a show is booked.  It carries enough
// information for downstream consumers to notify or index without querying
// the primary database.
type ShowListedEvent struct {
    ShowID    uint64 `json:"show_id"`
    ArtistID  uint64 `json:"artist_id"`
    VenueID   uint64 `json:"venue_id"`
    StartTime string `json:"start_time"`
}

// EntityEvent is published when a venue or artist is listed or deleted.
type EntityEvent struct {
    ID   uint64 `json:"id"`
    Name string `json:"name,omitempty"`
}

// NewEvent wraps payload in an envelope stamped with at in UTC.
func NewEvent(eventType string, at time.Time, payload any) (Event, error) {
    body, err := json.Marshal(payload)
    if err != nil {
        return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
    }
    return Event{Type: eventType, OccurredAt: at.UTC().Format(time.RFC3339), Payload: body}, nil
}
