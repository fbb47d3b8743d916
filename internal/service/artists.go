package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ArtistProfile is an artist with its show history, seen from the venue
// side.
type ArtistProfile struct {
	model.Artist
	booking.ShowHistory
}

// CreateArtist validates and stores a new artist.
func (d *Directory) CreateArtist(ctx context.Context, in ArtistInput) (*model.Artist, error) {
	const op = "create_artist"
	in.normalize()
	msg := "An error occurred. Artist " + in.Name + " could not be listed."
	if err := check(in); err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	a, err := in.artist()
	if err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	a.CreatedAt = d.clock()
	err = repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		return d.artists.WithTx(tx).Create(ctx, a)
	})
	if err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	d.publish(ctx, queue.TypeArtistListed, queue.EntityEvent{ID: a.ID, Name: a.Name})
	return a, nil
}

// UpdateArtist applies a partial edit and returns the stored artist.
func (d *Directory) UpdateArtist(ctx context.Context, id uint64, in ArtistUpdate) (*model.Artist, error) {
	const op = "update_artist"
	msg := cannotUpdate("artist", id)
	in.normalize()
	if err := check(in); err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	patch, err := in.patch()
	if err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	var out *model.Artist
	err = repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		repo := d.artists.WithTx(tx)
		if err := repo.Update(ctx, id, patch); err != nil {
			return err
		}
		a, err := repo.GetByID(ctx, id)
		out = a
		return err
	})
	if errors.Is(err, repository.ErrArtistNotFound) {
		err = noArtist(id)
	}
	if err != nil {
		return nil, d.fail(ctx, op, msg, err)
	}
	return out, nil
}

// DeleteArtist removes an artist and its shows.  It reports the number of
// artists removed, zero when id does not exist.
func (d *Directory) DeleteArtist(ctx context.Context, id uint64) (int64, error) {
	const op = "delete_artist"
	var n int64
	err := repository.RunInTx(ctx, d.db, func(tx *sql.Tx) error {
		var err error
		n, err = d.artists.WithTx(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return 0, d.fail(ctx, op, "Cannot delete artist, please try again later.", err)
	}
	if n > 0 {
		d.publish(ctx, queue.TypeArtistDeleted, queue.EntityEvent{ID: id})
	}
	return n, nil
}

// GetArtist returns an artist with its past and upcoming shows.
func (d *Directory) GetArtist(ctx context.Context, id uint64) (*ArtistProfile, error) {
	const op = "get_artist"
	now := d.clock()
	a, err := d.artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		err = noArtist(id)
	}
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	shows, err := d.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	return &ArtistProfile{Artist: *a, ShowHistory: booking.Aggregate(shows, booking.PerspectiveVenue, now)}, nil
}

// ListArtists returns every artist in store order.
func (d *Directory) ListArtists(ctx context.Context) ([]model.Summary, error) {
	const op = "list_artists"
	now := d.clock()
	artists, err := d.artists.ListAll(ctx)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	out, err := d.artistSummaries(ctx, artists, now)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	return out, nil
}

// SearchArtists matches artists by name, or by "City, State" when term is
// blank.
func (d *Directory) SearchArtists(ctx context.Context, term, cityState string) (booking.SearchResult, error) {
	const op = "search_artists"
	now := d.clock()
	q := booking.ParseSearch(term, cityState)
	var (
		artists []model.Artist
		err     error
	)
	switch q.Mode {
	case booking.SearchByName:
		artists, err = d.artists.SearchByName(ctx, q.Term)
	case booking.SearchByArea:
		artists, err = d.artists.SearchByArea(ctx, q.City, q.State)
	default:
		return booking.NewSearchResult(nil), nil
	}
	if err != nil {
		return booking.SearchResult{}, d.fail(ctx, op, readFailed, err)
	}
	summaries, err := d.artistSummaries(ctx, artists, now)
	if err != nil {
		return booking.SearchResult{}, d.fail(ctx, op, readFailed, err)
	}
	return booking.NewSearchResult(summaries), nil
}

func noArtist(id uint64) error {
	return booking.NotFoundf("No artist with the given id %d", id)
}
