// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository methods for venues: CRUD, the lookups used
// by the directory listing and the name/area search.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to detect sql.ErrNoRows
	"time"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website, seeking_talent, seeking_description, created_at`

// VenueRepo encapsulates all database queries related to venues.  It is
// bound to either the connection pool or a transaction.
type VenueRepo struct {
	db Querier // db is the pool or the transaction statements run on
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db Querier) *VenueRepo {
	return &VenueRepo{db: db}
}

// WithTx returns a copy of the repository whose statements run on tx.
func (r *VenueRepo) WithTx(tx *sql.Tx) *VenueRepo {
	return &VenueRepo{db: tx}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var v model.Venue
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &v.Website, &v.SeekingTalent, &v.SeekingDescription, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	return &v, nil
}

// Create inserts a new venue and its genres.  On success the venue's ID is
// populated with the auto-generated value.  CreatedAt is set to the current
// UTC time when the caller left it zero.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	v.CreatedAt = v.CreatedAt.UTC().Truncate(time.Microsecond)
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
	           website, seeking_talent, seeking_description, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, v.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	v.Genres = model.NewGenres(v.Genres...)
	return venueGenres.replace(ctx, r.db, v.ID, v.Genres)
}

// GetByID fetches a venue with its genres.  It returns ErrVenueNotFound if
// no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	genres, err := venueGenres.load(ctx, r.db, []uint64{v.ID})
	if err != nil {
		return nil, err
	}
	v.Genres = genres[v.ID]
	return v, nil
}

// Exists reports whether a venue with the id is present.
func (r *VenueRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM venues WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Update applies the non-empty fields of p to the venue.  Fields left nil or
// blank keep their stored value.  It returns ErrVenueNotFound when no venue
// has the id; an all-empty patch on an existing venue is a no-op.
func (r *VenueRepo) Update(ctx context.Context, id uint64, p model.VenuePatch) error {
	ok, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVenueNotFound
	}
	var set setClause
	set.str("name", p.Name)
	set.str("city", p.City)
	set.str("state", p.State)
	set.str("address", p.Address)
	set.str("phone", p.Phone)
	set.str("image_link", p.ImageLink)
	set.str("facebook_link", p.FacebookLink)
	set.str("website", p.Website)
	set.str("seeking_description", p.SeekingDescription)
	if p.SeekingTalent != nil {
		set.val("seeking_talent", *p.SeekingTalent)
	}
	if !set.empty() {
		q := "UPDATE venues SET " + set.sql() + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, append(set.args, id)...); err != nil {
			return err
		}
	}
	if g := model.NewGenres(p.Genres...); len(g) > 0 {
		return venueGenres.replace(ctx, r.db, id, g)
	}
	return nil
}

// Delete removes a venue together with its shows and genres.  It returns
// the number of venue rows removed, which is zero when the id does not
// exist.  Run it on a transaction so the cascade is all-or-nothing.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	// Cascade delete: shows hosted by this venue
	if _, err := r.db.ExecContext(ctx, "DELETE FROM shows WHERE venue_id = ?", id); err != nil {
		return 0, err
	}
	if err := venueGenres.deleteAll(ctx, r.db, id); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM venues WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListAll returns every venue in store order (by id).
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.list(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY id")
}

// ListRecent returns the most recently created venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]model.Venue, error) {
	return r.list(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY created_at DESC, id DESC LIMIT ?", limit)
}

// SearchByName returns venues whose name contains term, ignoring case.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	const q = "SELECT " + venueColumns + " FROM venues WHERE LOWER(name) LIKE ? ESCAPE '!' ORDER BY id"
	return r.list(ctx, q, booking.LikePattern(term, likeEscape))
}

// SearchByArea returns venues whose city contains city and whose state
// contains state, ignoring case.
func (r *VenueRepo) SearchByArea(ctx context.Context, city, state string) ([]model.Venue, error) {
	const q = "SELECT " + venueColumns + ` FROM venues
	           WHERE LOWER(city) LIKE ? ESCAPE '!' AND LOWER(state) LIKE ? ESCAPE '!'
	           ORDER BY id`
	return r.list(ctx, q, booking.LikePattern(city, likeEscape), booking.LikePattern(state, likeEscape))
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	ids := []uint64{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	genres, err := venueGenres.load(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Genres = genres[out[i].ID]
	}
	return out, nil
}
