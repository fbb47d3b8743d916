package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone, image_link, facebook_link, website,
	seeking_venue, seeking_description, available_from, available_to, created_at`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db Querier
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db Querier) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// WithTx returns a copy of the repository whose statements run on tx.
func (r *ArtistRepo) WithTx(tx *sql.Tx) *ArtistRepo {
	return &ArtistRepo{db: tx}
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a        model.Artist
		from, to sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink, &a.FacebookLink,
		&a.Website, &a.SeekingVenue, &a.SeekingDescription, &from, &to, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.AvailableFrom = nullTimePtr(from)
	a.AvailableTo = nullTimePtr(to)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Truncate(time.Microsecond)
}

// Create inserts a new artist and its genres and assigns the generated ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.CreatedAt = a.CreatedAt.UTC().Truncate(time.Microsecond)
	const q = `INSERT INTO artists (name, city, state, phone, image_link, facebook_link, website,
	           seeking_venue, seeking_description, available_from, available_to, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink, a.FacebookLink,
		a.Website, a.SeekingVenue, a.SeekingDescription, timeArg(a.AvailableFrom), timeArg(a.AvailableTo), a.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.Genres = model.NewGenres(a.Genres...)
	return artistGenres.replace(ctx, r.db, a.ID, a.Genres)
}

// GetByID retrieves an artist with its genres.  It returns
// ErrArtistNotFound if there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	genres, err := artistGenres.load(ctx, r.db, []uint64{a.ID})
	if err != nil {
		return nil, err
	}
	a.Genres = genres[a.ID]
	return a, nil
}

// Exists reports whether an artist with id is stored.
func (r *ArtistRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM artists WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Update applies the non-empty fields of p to the artist.  It returns
// ErrArtistNotFound when no artist has the id.
func (r *ArtistRepo) Update(ctx context.Context, id uint64, p model.ArtistPatch) error {
	ok, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrArtistNotFound
	}
	var set setClause
	set.str("name", p.Name)
	set.str("city", p.City)
	set.str("state", p.State)
	set.str("phone", p.Phone)
	set.str("image_link", p.ImageLink)
	set.str("facebook_link", p.FacebookLink)
	set.str("website", p.Website)
	set.str("seeking_description", p.SeekingDescription)
	if p.SeekingVenue != nil {
		set.val("seeking_venue", *p.SeekingVenue)
	}
	if p.AvailableFrom != nil {
		set.val("available_from", timeArg(p.AvailableFrom))
	}
	if p.AvailableTo != nil {
		set.val("available_to", timeArg(p.AvailableTo))
	}
	if !set.empty() {
		q := "UPDATE artists SET " + set.sql() + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, append(set.args, id)...); err != nil {
			return err
		}
	}
	if g := model.NewGenres(p.Genres...); len(g) > 0 {
		return artistGenres.replace(ctx, r.db, id, g)
	}
	return nil
}

// Delete removes an artist together with its shows and genres and
// returns the number of artist rows removed.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM shows WHERE artist_id = ?", id); err != nil {
		return 0, err
	}
	if err := artistGenres.deleteAll(ctx, r.db, id); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY id")
}

// ListRecent returns the most recently created artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int) ([]model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY created_at DESC, id DESC LIMIT ?", limit)
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	const q = "SELECT " + artistColumns + " FROM artists WHERE LOWER(name) LIKE ? ESCAPE '!' ORDER BY id"
	return r.list(ctx, q, booking.LikePattern(term, likeEscape))
}

// SearchByArea returns artists whose city and state contain the given
// fragments, ignoring case.
func (r *ArtistRepo) SearchByArea(ctx context.Context, city, state string) ([]model.Artist, error) {
	const q = "SELECT " + artistColumns + ` FROM artists
	           WHERE LOWER(city) LIKE ? ESCAPE '!' AND LOWER(state) LIKE ? ESCAPE '!'
	           ORDER BY id`
	return r.list(ctx, q, booking.LikePattern(city, likeEscape), booking.LikePattern(state, likeEscape))
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Artist{}
	ids := []uint64{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	genres, err := artistGenres.load(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Genres = genres[out[i].ID]
	}
	return out, nil
}
