// Package handler exposes the directory over HTTP.  Handlers bind JSON or
// form bodies into service inputs and render every failure through the
// same {"error", "message"} envelope.
package handler

import (
    "context"

    "github.com/iliyamo/fyyur/internal/booking"
    "github.com/iliyamo/fyyur/internal/model"
    "github.com/iliyamo/fyyur/internal/service"
)

// Directory is the set of service operations the handlers call.
// *service.Directory implements it.
type Directory interface {
    Home(ctx context.Context) (*service.Home, error)

    CreateVenue(ctx context.Context, in service.VenueInput) (*model.Venue, error)
    UpdateVenue(ctx context.Context, id uint64, in service.VenueUpdate) (*model.Venue, error)
    DeleteVenue(ctx context.Context, id uint64) (int64, error)
    GetVenue(ctx context.Context, id uint64) (*service.VenueProfile, error)
    ListVenueAreas(ctx context.Context) ([]booking.Area, error)
    SearchVenues(ctx context.Context, term, cityState string) (booking.SearchResult, error)

    CreateArtist(ctx context.Context, in service.ArtistInput) (*model.Artist, error)
    UpdateArtist(ctx context.Context, id uint64, in service.ArtistUpdate) (*model.Artist, error)
    DeleteArtist(ctx context.Context, id uint64) (int64, error)
    GetArtist(ctx context.Context, id uint64) (*service.ArtistProfile, error)
    ListArtists(ctx context.Context) ([]model.Summary, error)
    SearchArtists(ctx context.Context, term, cityState string) (booking.SearchResult, error)

    CreateShow(ctx context.Context, in service.ShowInput) (*model.Show, error)
    ListShows(ctx context.Context) ([]service.ShowRow, error)
}

// DirectoryHandler serves the venue, artist and show routes.
type DirectoryHandler struct {
    Dir Directory // Dir performs the operations
}

// NewDirectoryHandler constructs a DirectoryHandler and panics if dir is nil.
func NewDirectoryHandler(dir Directory) *DirectoryHandler {
    if dir == nil {
        panic("nil directory passed to NewDirectoryHandler")
    }
    return &DirectoryHandler{Dir: dir}
}

// searchRequest is the body of both search routes.
type searchRequest struct {
    SearchTerm string `json:"search_term" form:"search_term"`
    CityState  string `json:"search_by_city_state" form:"search_by_city_state"`
}

// nonEmpty returns nil for "" so that blank form fields leave stored
// values untouched.
func nonEmpty(s string) *string {
    if s == "" {
        return nil
    }
    return &s
}
