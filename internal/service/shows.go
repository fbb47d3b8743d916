package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ShowRow is one line of the show listing.
type ShowRow struct {
	ID              uint64 `json:"id"`
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

const showNotListed = "An error occurred. Show could not be listed."

// CreateShow books an artist into a venue.  The artist's availability
// window is checked inside the insert transaction; a start time outside
// it rejects the booking with an availability conflict.
func (d *Directory) CreateShow(ctx context.Context, in ShowInput) (*model.Show, error) {
	const op = "create_show"
	show, err := d.createShow(ctx, in)
	d.bookings.Observe(bookingOutcome(err))
	if err != nil {
		return nil, d.fail(ctx, op, showNotListed, err)
	}
	d.publish(ctx, queue.TypeShowListed, queue.ShowListedEvent{
		ShowID:    show.ID,
		ArtistID:  show.ArtistID,
		VenueID:   show.VenueID,
		StartTime: show.StartTime.Format(time.RFC3339),
	})
	return show, nil
}

func (d *Directory) createShow(ctx context.Context, in ShowInput) (*model.Show, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	start, err := booking.ParseInstant("start_time", in.StartTime)
	if err != nil {
		return nil, err
	}
	show := &model.Show{ArtistID: in.ArtistID, VenueID: in.VenueID, StartTime: start}
	err = repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		artist, err := d.artists.WithTx(tx).GetByID(ctx, in.ArtistID)
		if errors.Is(err, repository.ErrArtistNotFound) {
			return noArtist(in.ArtistID)
		}
		if err != nil {
			return err
		}
		ok, err := d.venues.WithTx(tx).Exists(ctx, in.VenueID)
		if err != nil {
			return err
		}
		if !ok {
			return noVenue(in.VenueID)
		}
		if err := booking.CheckAvailability(artist.AvailableFrom, artist.AvailableTo, start); err != nil {
			return err
		}
		err = d.shows.WithTx(tx).Create(ctx, show)
		if repository.IsForeignKeyViolation(err) {
			// the artist or venue went away after the checks above
			return booking.NotFoundf("The artist or venue of this show no longer exists")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return show, nil
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeListed
	case errors.Is(err, booking.ErrAvailabilityConflict):
		return metrics.OutcomeRejected
	case errors.Is(err, booking.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, booking.ErrValidation):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailed
	}
}

// ListShows returns every show with its venue and artist, ordered by
// start time.
func (d *Directory) ListShows(ctx context.Context) ([]ShowRow, error) {
	const op = "list_shows"
	shows, err := d.shows.ListAll(ctx)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	out := make([]ShowRow, len(shows))
	for i, s := range shows {
		out[i] = ShowRow{
			ID:              s.ID,
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       s.StartTime.UTC().Format(time.RFC3339),
		}
	}
	return out, nil
}
