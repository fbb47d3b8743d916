package model

import "time"

// Artist represents a performer who can be booked into shows.  It
// corresponds to a row in the `artists` table.  AvailableFrom and
// AvailableTo form an optional booking window; when either is nil the
// artist accepts any show time.
type Artist struct {
    ID                 uint64     `json:"id"`                       // artists.id
    Name               string     `json:"name"`                     // artists.name
    City               string     `json:"city"`                     // artists.city
    State              string     `json:"state"`                    // artists.state
    Phone              string     `json:"phone"`                    // artists.phone
    ImageLink          string     `json:"image_link"`               // artists.image_link
    FacebookLink       string     `json:"facebook_link"`            // artists.facebook_link
    Website            string     `json:"website"`                  // artists.website
    SeekingVenue       bool       `json:"seeking_venue"`            // artists.seeking_venue
    SeekingDescription string     `json:"seeking_description"`      // artists.seeking_description
    Genres             Genres     `json:"genres"`                   // artist_genres.genre
    AvailableFrom      *time.Time `json:"available_from,omitempty"` // artists.available_from (nullable)
    AvailableTo        *time.Time `json:"available_to,omitempty"`   // artists.available_to (nullable)
    CreatedAt          time.Time  `json:"created_at"`               // artists.created_at
}

// ArtistPatch enumerates the artist columns that may be changed after
// creation.  Semantics match VenuePatch; a nil availability bound keeps
// the stored bound.
type ArtistPatch struct {
    Name               *string
    City               *string
    State              *string
    Phone              *string
    ImageLink          *string
    FacebookLink       *string
    Website            *string
    SeekingVenue       *bool
    SeekingDescription *string
    Genres             Genres
    AvailableFrom      *time.Time
    AvailableTo        *time.Time
}
