package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "fyyur.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, config.DriverSQLite))
	return db
}

func strp(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

func seedVenue(t *testing.T, repo *VenueRepo, name, city, state string, genres ...string) *model.Venue {
	t.Helper()
	v := &model.Venue{Name: name, City: city, State: state, Address: "1 Main St", Genres: genres}
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func seedArtist(t *testing.T, repo *ArtistRepo, name string) *model.Artist {
	t.Helper()
	a := &model.Artist{Name: name, City: "San Francisco", State: "CA"}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func countRows(t *testing.T, db *sql.DB, q string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(q, args...).Scan(&n))
	return n
}

func TestVenueCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))

	v := seedVenue(t, repo, "The Musical Hop", "San Francisco", "CA", "Jazz", "Reggae", "jazz", " ")
	require.NotZero(t, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", got.Name)
	assert.Equal(t, model.Genres{"Jazz", "Reggae"}, got.Genres)
	assert.False(t, got.SeekingTalent)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)

	_, err = repo.GetByID(ctx, v.ID+100)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueEmptyGenresReadBackEmpty(t *testing.T) {
	repo := NewVenueRepo(newTestDB(t))
	v := seedVenue(t, repo, "Quiet Room", "Austin", "TX")

	got, err := repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Genres)
	assert.Empty(t, got.Genres)
}

func TestVenuePartialUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))
	v := seedVenue(t, repo, "Park Square", "New York", "NY", "Rock")

	err := repo.Update(ctx, v.ID, model.VenuePatch{
		Name:          strp("Park Square Live"),
		City:          strp("   "),
		SeekingTalent: boolp(true),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Park Square Live", got.Name)
	assert.Equal(t, "New York", got.City)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, model.Genres{"Rock"}, got.Genres)

	require.NoError(t, repo.Update(ctx, v.ID, model.VenuePatch{Genres: model.Genres{"Folk", "Blues"}}))
	got, err = repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Genres{"Folk", "Blues"}, got.Genres)

	assert.ErrorIs(t, repo.Update(ctx, v.ID+1, model.VenuePatch{Name: strp("x")}), ErrVenueNotFound)
}

func TestVenueDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := seedVenue(t, venues, "Dueling Pianos", "New York", "NY", "Classical")
	a := seedArtist(t, artists, "Guns N Petals")
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: time.Now().Add(time.Hour)}))

	n, err := venues.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM shows"))
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM venue_genres"))

	n, err = venues.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = artists.GetByID(ctx, a.ID)
	assert.NoError(t, err)
}

func TestVenueSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))
	hop := seedVenue(t, repo, "The Musical Hop", "San Francisco", "CA")
	coffee := seedVenue(t, repo, "Park Square Live Music & Coffee", "San Francisco", "CA")
	seedVenue(t, repo, "The Dueling Pianos Bar", "New York", "NY")
	pct := seedVenue(t, repo, "100% Stage", "Austin", "TX")

	got, err := repo.SearchByName(ctx, "hop")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, hop.ID, got[0].ID)

	got, err = repo.SearchByName(ctx, "Music")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []uint64{hop.ID, coffee.ID}, []uint64{got[0].ID, got[1].ID})

	got, err = repo.SearchByName(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pct.ID, got[0].ID)

	got, err = repo.SearchByName(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.SearchByArea(ctx, "san francisco", "ca")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestVenueListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		v := &model.Venue{Name: name, City: "c", State: "s", Address: "a", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Create(ctx, v))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Name)
	assert.Equal(t, "mid", got[1].Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "old", all[0].Name)
}

func TestArtistAvailabilityRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewArtistRepo(newTestDB(t))
	from := time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2035, 12, 31, 23, 0, 0, 0, time.UTC)
	a := &model.Artist{Name: "The Wild Sax Band", City: "San Francisco", State: "CA",
		Genres: model.Genres{"Jazz", "Classical"}, AvailableFrom: &from, AvailableTo: &to}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AvailableFrom)
	require.NotNil(t, got.AvailableTo)
	assert.True(t, from.Equal(*got.AvailableFrom))
	assert.True(t, to.Equal(*got.AvailableTo))
	assert.Equal(t, model.Genres{"Jazz", "Classical"}, got.Genres)

	plain := seedArtist(t, repo, "Matt Quevedo")
	got, err = repo.GetByID(ctx, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AvailableFrom)
	assert.Nil(t, got.AvailableTo)

	later := to.Add(24 * time.Hour)
	require.NoError(t, repo.Update(ctx, a.ID, model.ArtistPatch{AvailableTo: &later, SeekingVenue: boolp(true)}))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, later.Equal(*got.AvailableTo))
	assert.True(t, got.SeekingVenue)

	assert.ErrorIs(t, repo.Update(ctx, 999, model.ArtistPatch{}), ErrArtistNotFound)
	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)
	v := seedVenue(t, venues, "Hall", "Austin", "TX")
	a := &model.Artist{Name: "Band", City: "Austin", State: "TX", Genres: model.Genres{"Rock"}}
	require.NoError(t, artists.Create(ctx, a))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: time.Now()}))

	n, err := artists.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM shows"))
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM artist_genres"))
	ok, err := venues.Exists(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestShowListingsAndStartTimes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)
	v1 := seedVenue(t, venues, "One", "a", "b")
	v2 := seedVenue(t, venues, "Two", "a", "b")
	a := seedArtist(t, artists, "Solo")

	t1 := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	t2 := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v1.ID, StartTime: t2}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v1.ID, StartTime: t1}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: a.ID, VenueID: v2.ID, StartTime: t2}))

	byVenue, err := shows.ListByVenue(ctx, v1.ID)
	require.NoError(t, err)
	require.Len(t, byVenue, 2)
	assert.True(t, t1.Equal(byVenue[0].StartTime))
	assert.Equal(t, "Solo", byVenue[0].ArtistName)
	assert.Equal(t, "One", byVenue[0].VenueName)

	byArtist, err := shows.ListByArtist(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, byArtist, 3)

	all, err := shows.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	times, err := shows.StartTimesByVenues(ctx, []uint64{v1.ID, v2.ID, 999})
	require.NoError(t, err)
	assert.Len(t, times[v1.ID], 2)
	assert.Len(t, times[v2.ID], 1)
	assert.Empty(t, times[999])

	times, err = shows.StartTimesByArtists(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestShowForeignKeyViolation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	v := seedVenue(t, NewVenueRepo(db), "Hall", "a", "b")

	err := NewShowRepo(db).Create(ctx, &model.Show{ArtistID: 42, VenueID: v.ID, StartTime: time.Now()})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}

func TestRunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	boom := errors.New("boom")

	err := RunInTx(ctx, db, func(tx *sql.Tx) error {
		seedVenue(t, NewVenueRepo(db).WithTx(tx), "Ghost", "a", "b", "Jazz")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM venues"))
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM venue_genres"))

	assert.Panics(t, func() {
		_ = RunInTx(ctx, db, func(tx *sql.Tx) error {
			seedVenue(t, NewVenueRepo(tx), "Ghost", "a", "b")
			panic("bad")
		})
	})
	assert.Zero(t, countRows(t, db, "SELECT COUNT(*) FROM venues"))

	require.NoError(t, RunInTx(ctx, db, func(tx *sql.Tx) error {
		seedVenue(t, NewVenueRepo(db).WithTx(tx), "Kept", "a", "b")
		return nil
	}))
	assert.Equal(t, 1, countRows(t, db, "SELECT COUNT(*) FROM venues"))
}
