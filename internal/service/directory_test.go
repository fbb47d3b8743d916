package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
)

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type fixture struct {
	dir  *Directory
	db   *sql.DB
	pub  *recordingPublisher
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "fyyur.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, config.DriverSQLite))

	core, logs := observer.New(zap.DebugLevel)
	prev := logger.GetLogger()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(prev) })

	bm, err := metrics.NewBookingMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	pub := &recordingPublisher{}
	dir := NewDirectory(db,
		WithClock(func() time.Time { return testNow }),
		WithPublisher(pub),
		WithBookingMetrics(bm),
	)
	return &fixture{dir: dir, db: db, pub: pub, logs: logs}
}

func (f *fixture) venue(t *testing.T, name, city, state string, genres ...string) *model.Venue {
	t.Helper()
	v, err := f.dir.CreateVenue(context.Background(), VenueInput{
		Name: name, City: city, State: state, Address: "1 Main St", Genres: genres,
	})
	require.NoError(t, err)
	return v
}

func (f *fixture) artist(t *testing.T, name string, window ...string) *model.Artist {
	t.Helper()
	in := ArtistInput{Name: name, City: "San Francisco", State: "CA"}
	if len(window) == 2 {
		in.AvailableFrom, in.AvailableTo = window[0], window[1]
	}
	a, err := f.dir.CreateArtist(context.Background(), in)
	require.NoError(t, err)
	return a
}

func (f *fixture) show(t *testing.T, artistID, venueID uint64, start string) *model.Show {
	t.Helper()
	s, err := f.dir.CreateShow(context.Background(), ShowInput{ArtistID: artistID, VenueID: venueID, StartTime: start})
	require.NoError(t, err)
	return s
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func names(s []model.Summary) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Name
	}
	return out
}

func TestCreateVenueValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dir.CreateVenue(ctx, VenueInput{Name: "  ", City: "x", State: "y", Address: "z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrValidation)
	assert.Equal(t, "name is required", booking.MessageOf(err))

	_, err = f.dir.CreateVenue(ctx, VenueInput{Name: "n", City: "x", State: "y", Address: "z", Website: "not a url"})
	assert.Equal(t, "website must be a valid URL", booking.MessageOf(err))

	assert.Zero(t, f.count(t, "venues"))
	rejected := f.logs.FilterMessage("operation rejected").All()
	require.NotEmpty(t, rejected)
	assert.Equal(t, "create_venue", rejected[0].ContextMap()["op"])
}

func TestCreateVenuePublishesAndStampsClock(t *testing.T) {
	f := newFixture(t)
	v := f.venue(t, "The Musical Hop", "San Francisco", "CA", "Jazz", "Reggae")

	assert.True(t, testNow.Equal(v.CreatedAt))
	assert.Equal(t, []string{queue.TypeVenueListed}, f.pub.types())
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker down")

	v := f.venue(t, "Hall", "Austin", "TX")
	assert.NotZero(t, v.ID)
	assert.Len(t, f.logs.FilterMessage("event publish failed").All(), 1)
}

func TestGenresRoundTrip(t *testing.T) {
	f := newFixture(t)
	v := f.venue(t, "The Musical Hop", "San Francisco", "CA", "Jazz", "Reggae")

	p, err := f.dir.GetVenue(context.Background(), v.ID)
	require.NoError(t, err)
	assert.True(t, p.Genres.Equal(model.NewGenres("Reggae", "Jazz")))

	empty := f.venue(t, "Bare", "San Francisco", "CA")
	p, err = f.dir.GetVenue(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Genres)
}

func TestUpdateVenuePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue(t, "Park Square", "New York", "NY", "Rock")

	empty := ""
	name := "Park Square Live Music & Coffee"
	seeking := true
	got, err := f.dir.UpdateVenue(ctx, v.ID, VenueUpdate{Name: &name, City: &empty, SeekingTalent: &seeking})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "New York", got.City)
	assert.Equal(t, "1 Main St", got.Address)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, model.Genres{"Rock"}, got.Genres)

	_, err = f.dir.UpdateVenue(ctx, v.ID+1, VenueUpdate{Name: &name})
	assert.ErrorIs(t, err, booking.ErrNotFound)

	bad := "ftp//nope"
	_, err = f.dir.UpdateVenue(ctx, v.ID, VenueUpdate{ImageLink: &bad})
	assert.ErrorIs(t, err, booking.ErrValidation)
}

func TestUpdateArtistPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.artist(t, "Guns N Petals")

	phone := "326-123-5000"
	from := "2035-01-01T00:00:00Z"
	got, err := f.dir.UpdateArtist(ctx, a.ID, ArtistUpdate{Phone: &phone, AvailableFrom: &from, Genres: []string{"Rock n Roll"}})
	require.NoError(t, err)
	assert.Equal(t, "Guns N Petals", got.Name)
	assert.Equal(t, phone, got.Phone)
	require.NotNil(t, got.AvailableFrom)
	assert.Equal(t, "2035-01-01T00:00:00Z", got.AvailableFrom.Format(time.RFC3339))
	assert.Nil(t, got.AvailableTo)
	assert.Equal(t, model.Genres{"Rock n Roll"}, got.Genres)

	naive := "2035-01-01 00:00:00"
	_, err = f.dir.UpdateArtist(ctx, a.ID, ArtistUpdate{AvailableTo: &naive})
	assert.ErrorIs(t, err, booking.ErrValidation)

	_, err = f.dir.UpdateArtist(ctx, 999, ArtistUpdate{Phone: &phone})
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestCreateShowAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue(t, "Hall", "a", "b")
	limited := f.artist(t, "Limited", "2035-04-01T00:00:00Z", "2035-04-30T23:00:00Z")
	free := f.artist(t, "Free")

	// inclusive bounds
	f.show(t, limited.ID, v.ID, "2035-04-01T00:00:00Z")
	f.show(t, limited.ID, v.ID, "2035-04-30T23:00:00Z")
	f.show(t, limited.ID, v.ID, "2035-04-15T20:00:00+02:00")
	f.show(t, free.ID, v.ID, "1999-01-01T00:00:00Z")

	_, err := f.dir.CreateShow(ctx, ShowInput{ArtistID: limited.ID, VenueID: v.ID, StartTime: "2035-05-01T00:00:00Z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrAvailabilityConflict)
	assert.Equal(t,
		"Cannot book shows outside artist availability, Artist is available from 2035-04-01 00:00:00 to 2035-04-30 23:00:00",
		booking.MessageOf(err))
	var be *booking.Error
	require.True(t, errors.As(err, &be))
	require.NotNil(t, be.Window)

	_, err = f.dir.CreateShow(ctx, ShowInput{ArtistID: limited.ID, VenueID: v.ID, StartTime: "2035-03-31T23:59:59Z"})
	assert.ErrorIs(t, err, booking.ErrAvailabilityConflict)

	assert.Equal(t, 4, f.count(t, "shows"))
	assert.Equal(t, 4, countEvents(f.pub.types(), queue.TypeShowListed))
}

func countEvents(types []string, want string) int {
	n := 0
	for _, t := range types {
		if t == want {
			n++
		}
	}
	return n
}

func TestCreateShowRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue(t, "Hall", "a", "b")
	a := f.artist(t, "Band")

	_, err := f.dir.CreateShow(ctx, ShowInput{ArtistID: a.ID, VenueID: v.ID, StartTime: "2035-04-01 20:00:00"})
	assert.ErrorIs(t, err, booking.ErrValidation)

	_, err = f.dir.CreateShow(ctx, ShowInput{ArtistID: a.ID, VenueID: v.ID})
	assert.ErrorIs(t, err, booking.ErrValidation)

	_, err = f.dir.CreateShow(ctx, ShowInput{ArtistID: 404, VenueID: v.ID, StartTime: "2035-04-01T20:00:00Z"})
	assert.ErrorIs(t, err, booking.ErrNotFound)

	_, err = f.dir.CreateShow(ctx, ShowInput{ArtistID: a.ID, VenueID: 404, StartTime: "2035-04-01T20:00:00Z"})
	assert.ErrorIs(t, err, booking.ErrNotFound)

	assert.Zero(t, f.count(t, "shows"))
}

func TestShowAtNowIsUpcoming(t *testing.T) {
	f := newFixture(t)
	v := f.venue(t, "Hall", "a", "b")
	a := f.artist(t, "Band")
	f.show(t, a.ID, v.ID, testNow.Format(time.RFC3339))
	f.show(t, a.ID, v.ID, testNow.Add(-time.Second).Format(time.RFC3339))

	p, err := f.dir.GetVenue(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.UpcomingShowsCount)
	assert.Equal(t, 1, p.PastShowsCount)
	assert.Equal(t, testNow.Format(time.RFC3339), p.UpcomingShows[0].StartTime)
	assert.Equal(t, "Band", p.UpcomingShows[0].ArtistName)
	assert.Empty(t, p.UpcomingShows[0].VenueName)

	ap, err := f.dir.GetArtist(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ap.UpcomingShowsCount)
	assert.Equal(t, "Hall", ap.PastShows[0].VenueName)
	assert.Empty(t, ap.PastShows[0].ArtistName)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v1 := f.venue(t, "One", "a", "b", "Jazz")
	v2 := f.venue(t, "Two", "a", "b")
	a1 := f.artist(t, "First")
	a2 := f.artist(t, "Second")
	f.show(t, a1.ID, v1.ID, "2035-01-01T20:00:00Z")
	f.show(t, a2.ID, v1.ID, "2035-01-02T20:00:00Z")
	f.show(t, a2.ID, v2.ID, "2035-01-03T20:00:00Z")

	n, err := f.dir.DeleteVenue(ctx, v1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, 1, f.count(t, "shows"))
	_, err = f.dir.GetVenue(ctx, v1.ID)
	assert.ErrorIs(t, err, booking.ErrNotFound)

	n, err = f.dir.DeleteVenue(ctx, v1.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.dir.DeleteArtist(ctx, a2.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Zero(t, f.count(t, "shows"))

	assert.Equal(t, 1, countEvents(f.pub.types(), queue.TypeVenueDeleted))
	assert.Equal(t, 1, countEvents(f.pub.types(), queue.TypeArtistDeleted))
}

func TestSearchVenues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hop := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	f.venue(t, "The Dueling Pianos Bar", "New York", "NY")
	f.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	a := f.artist(t, "Band")
	f.show(t, a.ID, hop.ID, "2035-01-01T20:00:00Z")
	f.show(t, a.ID, hop.ID, "2019-01-01T20:00:00Z")

	res, err := f.dir.SearchVenues(ctx, "Hop", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []string{"The Musical Hop"}, names(res.Data))
	assert.Equal(t, 1, res.Data[0].NumUpcomingShows)

	res, err = f.dir.SearchVenues(ctx, "Music", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Musical Hop", "Park Square Live Music & Coffee"}, names(res.Data))

	res, err = f.dir.SearchVenues(ctx, "", "San Francisco, CA")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Musical Hop", "Park Square Live Music & Coffee"}, names(res.Data))

	res, err = f.dir.SearchVenues(ctx, "", "San Francisco")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.NotNil(t, res.Data)
}

func TestSearchArtists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, n := range []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"} {
		f.artist(t, n)
	}

	res, err := f.dir.SearchArtists(ctx, "A", "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	res, err = f.dir.SearchArtists(ctx, "band", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Wild Sax Band"}, names(res.Data))

	res, err = f.dir.SearchArtists(ctx, "", "san francisco, ca")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
}

func TestListVenueAreasAndHome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hop := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	f.venue(t, "The Dueling Pianos Bar", "New York", "NY")
	f.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	a := f.artist(t, "Band")
	f.show(t, a.ID, hop.ID, "2035-01-01T20:00:00Z")

	areas, err := f.dir.ListVenueAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Len(t, areas[0].Venues, 2)
	assert.Equal(t, 1, areas[0].Venues[0].NumUpcomingShows)
	assert.Equal(t, "NY", areas[1].State)

	home, err := f.dir.Home(ctx)
	require.NoError(t, err)
	assert.Len(t, home.RecentVenues, 3)
	assert.Equal(t, []string{"Band"}, names(home.RecentArtists))

	artists, err := f.dir.ListArtists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, artists[0].NumUpcomingShows)

	shows, err := f.dir.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "The Musical Hop", shows[0].VenueName)
	assert.Equal(t, "2035-01-01T20:00:00Z", shows[0].StartTime)
}

func TestWriteFailureIsPersistenceAndLogged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Close())

	_, err := f.dir.CreateVenue(context.Background(), VenueInput{Name: "n", City: "c", State: "s", Address: "a"})
	require.Error(t, err)
	assert.Equal(t, booking.KindPersistence, booking.KindOf(err))
	assert.Equal(t, "An error occurred. Venue n could not be listed.", booking.MessageOf(err))

	failed := f.logs.FilterMessage("operation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "create_venue", failed[0].ContextMap()["op"])
}
