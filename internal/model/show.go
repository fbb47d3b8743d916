package model

import "time"

// Show is a scheduled booking linking one artist to one venue.  It
// corresponds to a row in the `shows` table.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – performing artist (cascade-deleted with the artist).
//  VenueID   – hosting venue (cascade-deleted with the venue).
//  StartTime – UTC instant the show begins.
type Show struct {
    ID        uint64    `json:"id"`         // shows.id
    ArtistID  uint64    `json:"artist_id"`  // shows.artist_id
    VenueID   uint64    `json:"venue_id"`   // shows.venue_id
    StartTime time.Time `json:"start_time"` // shows.start_time
}

// ShowListing is a show joined with the name and image of both sides.
// Repository list queries return this shape so the aggregator can pick
// whichever counterpart a profile needs.
type ShowListing struct {
    Show
    ArtistName      string
    ArtistImageLink string
    VenueName       string
    VenueImageLink  string
}

// StartsAt returns the start instant.
func (s ShowListing) StartsAt() time.Time { return s.StartTime }
