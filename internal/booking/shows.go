package booking

import (
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// Timed is anything that has a start instant.
type Timed interface {
	StartsAt() time.Time
}

// Split partitions shows into past (start < now) and upcoming
// (start >= now).  Every element lands in exactly one bucket and input
// order is kept within each bucket.  Callers take now once per request.
func Split[T Timed](shows []T, now time.Time) (past, upcoming []T) {
	past = make([]T, 0, len(shows))
	upcoming = make([]T, 0, len(shows))
	for _, s := range shows {
		if s.StartsAt().Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}

// CountUpcoming counts the instants at or after now.
func CountUpcoming(starts []time.Time, now time.Time) int {
	n := 0
	for _, t := range starts {
		if !t.Before(now) {
			n++
		}
	}
	return n
}

// Perspective selects which side of a show a profile displays.
type Perspective string

const (
	// PerspectiveArtist shows who plays; used on venue profiles.
	PerspectiveArtist Perspective = "artist"
	// PerspectiveVenue shows where the artist plays; used on artist profiles.
	PerspectiveVenue Perspective = "venue"
)

// ShowCard is the display record for one show on a profile.  Only the
// fields of the chosen perspective are populated.
type ShowCard struct {
	StartTime       string `json:"start_time"`
	ArtistID        uint64 `json:"artist_id,omitempty"`
	ArtistName      string `json:"artist_name,omitempty"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	VenueID         uint64 `json:"venue_id,omitempty"`
	VenueName       string `json:"venue_name,omitempty"`
	VenueImageLink  string `json:"venue_image_link,omitempty"`
}

// Project turns a joined show into the card for the given perspective.
func Project(s model.ShowListing, p Perspective) ShowCard {
	card := ShowCard{StartTime: s.StartTime.UTC().Format(time.RFC3339)}
	switch p {
	case PerspectiveArtist:
		card.ArtistID = s.ArtistID
		card.ArtistName = s.ArtistName
		card.ArtistImageLink = s.ArtistImageLink
	case PerspectiveVenue:
		card.VenueID = s.VenueID
		card.VenueName = s.VenueName
		card.VenueImageLink = s.VenueImageLink
	}
	return card
}

// ShowHistory is the aggregated past/upcoming block of a profile.
type ShowHistory struct {
	PastShows          []ShowCard `json:"past_shows"`
	UpcomingShows      []ShowCard `json:"upcoming_shows"`
	PastShowsCount     int        `json:"past_shows_count"`
	UpcomingShowsCount int        `json:"upcoming_shows_count"`
}

// Aggregate splits shows around now and projects both buckets.
func Aggregate(shows []model.ShowListing, p Perspective, now time.Time) ShowHistory {
	past, upcoming := Split(shows, now)
	h := ShowHistory{
		PastShows:     make([]ShowCard, 0, len(past)),
		UpcomingShows: make([]ShowCard, 0, len(upcoming)),
	}
	for _, s := range past {
		h.PastShows = append(h.PastShows, Project(s, p))
	}
	for _, s := range upcoming {
		h.UpcomingShows = append(h.UpcomingShows, Project(s, p))
	}
	h.PastShowsCount = len(h.PastShows)
	h.UpcomingShowsCount = len(h.UpcomingShows)
	return h
}
