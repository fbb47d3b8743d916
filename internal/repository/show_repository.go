// Package repository contains data access logic for Show domain operations.
// A Show links one artist to one venue at a start time; listing queries join
// in the name and image of both sides so profiles need a single round trip.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db Querier
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db Querier) *ShowRepo {
	return &ShowRepo{db: db}
}

// WithTx returns a copy of the repository whose statements run on tx.
func (r *ShowRepo) WithTx(tx *sql.Tx) *ShowRepo {
	return &ShowRepo{db: tx}
}

// Create inserts a new show and assigns the generated ID.  The caller is
// responsible for checking that the artist and venue exist and that the
// start time fits the artist's availability.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	s.StartTime = s.StartTime.UTC().Truncate(time.Microsecond)
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

const showListingSelect = `SELECT s.id, s.artist_id, s.venue_id, s.start_time,
	a.name, a.image_link, v.name, v.image_link
	FROM shows s
	JOIN artists a ON a.id = s.artist_id
	JOIN venues v  ON v.id = s.venue_id`

// ListAll returns every show joined with its artist and venue, ordered by
// start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.listings(ctx, showListingSelect+" ORDER BY s.start_time, s.id")
}

// ListByVenue returns the shows hosted by a venue.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, showListingSelect+" WHERE s.venue_id = ? ORDER BY s.start_time, s.id", venueID)
}

// ListByArtist returns the shows an artist plays.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, showListingSelect+" WHERE s.artist_id = ? ORDER BY s.start_time, s.id", artistID)
}

func (r *ShowRepo) listings(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ShowListing{}
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime,
			&s.ArtistName, &s.ArtistImageLink, &s.VenueName, &s.VenueImageLink); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StartTimesByVenues returns the start times of the shows of each venue in
// ids.  Used to count upcoming shows for listings and search results.
func (r *ShowRepo) StartTimesByVenues(ctx context.Context, ids []uint64) (map[uint64][]time.Time, error) {
	return r.startTimes(ctx, "venue_id", ids)
}

// StartTimesByArtists is StartTimesByVenues for artists.
func (r *ShowRepo) StartTimesByArtists(ctx context.Context, ids []uint64) (map[uint64][]time.Time, error) {
	return r.startTimes(ctx, "artist_id", ids)
}

func (r *ShowRepo) startTimes(ctx context.Context, col string, ids []uint64) (map[uint64][]time.Time, error) {
	out := make(map[uint64][]time.Time, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := "SELECT " + col + ", start_time FROM shows WHERE " + col + " IN (" + placeholders(len(ids)) + ")"
	rows, err := r.db.QueryContext(ctx, q, idArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id    uint64
			start time.Time
		)
		if err := rows.Scan(&id, &start); err != nil {
			return nil, err
		}
		out[id] = append(out[id], start.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
