package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// VenueProfile is a venue with its show history, seen from the artist side.
type VenueProfile struct {
	model.Venue
	booking.ShowHistory
}

// CreateVenue validates and stores a new venue.
func (d *Directory) CreateVenue(ctx context.Context, in VenueInput) (*model.Venue, error) {
	const op = "create_venue"
	in.normalize()
	msg := "An error occurred. Venue " + in.Name + " could not be listed."
	if err := check(in); err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	v := in.venue()
	v.CreatedAt = d.clock()
	err := repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		return d.venues.WithTx(tx).Create(ctx, v)
	})
	if err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	d.publish(ctx, queue.TypeVenueListed, queue.EntityEvent{ID: v.ID, Name: v.Name})
	return v, nil
}

// UpdateVenue applies a partial edit and returns the stored venue.
func (d *Directory) UpdateVenue(ctx context.Context, id uint64, in VenueUpdate) (*model.Venue, error) {
	const op = "update_venue"
	msg := cannotUpdate("venue", id)
	in.normalize()
	if err := check(in); err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	var out *model.Venue
	err := repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		repo := d.venues.WithTx(tx)
		if err := repo.Update(ctx, id, in.patch()); err != nil {
			return err
		}
		v, err := repo.GetByID(ctx, id)
		out = v
		return err
	})
	if errors.Is(err, repository.ErrVenueNotFound) {
		err = noVenue(id)
	}
	if err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	return out, nil
}

// DeleteVenue removes a venue and its shows.  It reports the number of
// venues removed, zero when id does not exist.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) (int64, error) {
	const op = "delete_venue"
	var n int64
	err := repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		var err error
		n, err = d.venues.WithTx(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return 0, d.fail(ctx, op, "Cannot delete venue, please try again later.", err)
	}
	if n > 0 {
		d.publish(ctx, queue.TypeVenueDeleted, queue.EntityEvent{ID: id})
	}
	return n, nil
}

// GetVenue returns a venue with its past and upcoming shows.
func (d *Directory) GetVenue(ctx context.Context, id uint64) (*VenueProfile, error) {
	const op = "get_venue"
	now := d.clock()
	v, err := d.venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		err = noVenue(id)
	}
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	shows, err := d.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	return &VenueProfile{Venue: *v, ShowHistory: booking.Aggregate(shows, booking.PerspectiveArtist, now)}, nil
}

// ListVenueAreas returns every venue grouped by state and city.
func (d *Directory) ListVenueAreas(ctx context.Context) ([]booking.Area, error) {
	const op = "list_venue_areas"
	now := d.clock()
	venues, err := d.venues.ListAll(ctx)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	summaries, err := d.venueSummaries(ctx, venues, now)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	upcoming := make(map[uint64]int, len(summaries))
	for _, s := range summaries {
		upcoming[s.ID] = s.NumUpcomingShows
	}
	return booking.GroupByArea(venues, upcoming), nil
}

// SearchVenues matches venues by name, or by "City, State" when term is
// blank.  Neither yields an empty result.
func (d *Directory) SearchVenues(ctx context.Context, term, cityState string) (booking.SearchResult, error) {
	const op = "search_venues"
	now := d.clock()
	q := booking.ParseSearch(term, cityState)
	var (
		venues []model.Venue
		err    error
	)
	switch q.Mode {
	case booking.SearchByName:
		venues, err = d.venues.SearchByName(ctx, q.Term)
	case booking.SearchByArea:
		venues, err = d.venues.SearchByArea(ctx, q.City, q.State)
	default:
		return booking.NewSearchResult(nil), nil
	}
	if err != nil {
		return booking.SearchResult{}, d.fail(ctx, op, readFailed, err)
	}
	summaries, err := d.venueSummaries(ctx, venues, now)
	if err != nil {
		return booking.SearchResult{}, d.fail(ctx, op, readFailed, err)
	}
	return booking.NewSearchResult(summaries), nil
}

func noVenue(id uint64) error {
	return booking.NotFoundf("No venue with the given id %d", id)
}

func cannotUpdate(kind string, id uint64) string {
	return fmt.Sprintf("Cannot update %s with id %d, please try again.", kind, id)
}
