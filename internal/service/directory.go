// Package service implements the directory operations on top of the
// repositories.  Each write runs in a single transaction; failures are
// logged with the operation name and returned as *booking.Error so the
// HTTP layer can render them without inspecting storage errors.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Clock returns the current instant.  Directory reads it once per
// operation.
type Clock func() time.Time

// RecentLimit is the number of venues and artists shown on the home page.
const RecentLimit = 10

const publishTimeout = 3 * time.Second

// Directory is the entry point for every venue, artist and show
// operation.
type Directory struct {
	db       *sql.DB
	venues   *repository.VenueRepo
	artists  *repository.ArtistRepo
	shows    *repository.ShowRepo
	events   queue.Publisher
	bookings *metrics.BookingMetrics
	now      Clock
}

// Option configures a Directory.
type Option func(*Directory)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(d *Directory) { d.now = c } }

// WithPublisher sets where domain events go after a commit.
func WithPublisher(p queue.Publisher) Option { return func(d *Directory) { d.events = p } }

// WithBookingMetrics records create-show outcomes on m.
func WithBookingMetrics(m *metrics.BookingMetrics) Option {
	return func(d *Directory) { d.bookings = m }
}

// NewDirectory builds a Directory over db.  Without options events are
// dropped, metrics are not recorded and time comes from time.Now.
func NewDirectory(db *sql.DB, opts ...Option) *Directory {
	d := &Directory{
		db:      db,
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		events:  queue.NopPublisher{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Home lists the most recently created venues and artists.
type Home struct {
	RecentVenues  []model.Summary `json:"recent_venues"`
	RecentArtists []model.Summary `json:"recent_artists"`
}

// Home returns the ten most recent venues and artists with their upcoming
// show counts.
func (d *Directory) Home(ctx context.Context) (*Home, error) {
	const op = "home"
	now := d.clock()
	venues, err := d.venues.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	artists, err := d.artists.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	vs, err := d.venueSummaries(ctx, venues, now)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	as, err := d.artistSummaries(ctx, artists, now)
	if err != nil {
		return nil, d.fail(ctx, op, readFailed, err)
	}
	return &Home{RecentVenues: vs, RecentArtists: as}, nil
}

const readFailed = "An error occurred while loading the directory, please try again later."

// clock returns the current instant in UTC.
func (d *Directory) clock() time.Time {
	return d.now().UTC()
}

// fail logs err under op and converts it into a *booking.Error.  Errors
// that are not already *booking.Error become persistence errors with msg.
func (d *Directory) fail(ctx context.Context, op, msg string, err error) error {
	var be *booking.Error
	if !errors.As(err, &be) {
		be = booking.Persistence(msg, err)
	}
	log := logger.FromContext(ctx).With(
		zap.String("op", op),
		zap.String("kind", string(be.Kind)),
	)
	if be.Kind == booking.KindPersistence {
		log.Error("operation failed", zap.Error(err))
	} else {
		log.Warn("operation rejected", zap.String("reason", be.Message))
	}
	return be
}

// publish hands one event to the publisher.  Failures are logged and
// otherwise ignored; the write has already been committed.
func (d *Directory) publish(ctx context.Context, eventType string, payload any) {
	ev, err := queue.NewEvent(eventType, d.clock(), payload)
	if err == nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err = d.events.Publish(pctx, ev)
		cancel()
	}
	if err != nil {
		logger.FromContext(ctx).Warn("event publish failed", zap.String("event", eventType), zap.Error(err))
	}
}

func (d *Directory) venueSummaries(ctx context.Context, venues []model.Venue, now time.Time) ([]model.Summary, error) {
	ids := make([]uint64, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	times, err := d.shows.StartTimesByVenues(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.Summary, len(venues))
	for i, v := range venues {
		out[i] = model.Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: booking.CountUpcoming(times[v.ID], now)}
	}
	return out, nil
}

func (d *Directory) artistSummaries(ctx context.Context, artists []model.Artist, now time.Time) ([]model.Summary, error) {
	ids := make([]uint64, len(artists))
	for i, a := range artists {
		ids[i] = a.ID
	}
	times, err := d.shows.StartTimesByArtists(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.Summary, len(artists))
	for i, a := range artists {
		out[i] = model.Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: booking.CountUpcoming(times[a.ID], now)}
	}
	return out, nil
}
