package model

import "time"

// Venue represents a physical location that can host shows.  It
// corresponds to a row in the `venues` table; genres live in the
// `venue_genres` table and are loaded alongside the row.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location used for grouping and area search.
//  Address, Phone     – contact details.
//  ImageLink          – URL of the profile image.
//  FacebookLink       – URL of the facebook page.
//  Website            – URL of the venue website.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text shown when seeking talent.
//  Genres             – set of genre tags.
//  CreatedAt          – insert timestamp (UTC), used for recent ordering only.
type Venue struct {
    ID                 uint64    `json:"id"`                  // venues.id
    Name               string    `json:"name"`                // venues.name
    City               string    `json:"city"`                // venues.city
    State              string    `json:"state"`               // venues.state
    Address            string    `json:"address"`             // venues.address
    Phone              string    `json:"phone"`               // venues.phone
    ImageLink          string    `json:"image_link"`          // venues.image_link
    FacebookLink       string    `json:"facebook_link"`       // venues.facebook_link
    Website            string    `json:"website"`             // venues.website
    SeekingTalent      bool      `json:"seeking_talent"`      // venues.seeking_talent
    SeekingDescription string    `json:"seeking_description"` // venues.seeking_description
    Genres             Genres    `json:"genres"`              // venue_genres.genre
    CreatedAt          time.Time `json:"created_at"`          // venues.created_at
}

// VenuePatch enumerates the venue columns that may be changed after
// creation.  A nil pointer or an empty string leaves the stored value
// as it is; an empty genre set does the same.
type VenuePatch struct {
    Name               *string
    City               *string
    State              *string
    Address            *string
    Phone              *string
    ImageLink          *string
    FacebookLink       *string
    Website            *string
    SeekingTalent      *bool
    SeekingDescription *string
    Genres             Genres
}

// Summary is the short {id, name} form used by listings and search.
type Summary struct {
    ID               uint64 `json:"id"`
    Name             string `json:"name"`
    NumUpcomingShows int    `json:"num_upcoming_shows"`
}
