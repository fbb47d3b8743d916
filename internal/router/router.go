package router // package router defines how HTTP routes are registered for the API

import (
	"net/http" // http.Handler for the metrics endpoint

	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // echo's bundled recover middleware

	"github.com/iliyamo/fyyur/internal/handler"    // import the handlers that implement the directory operations
	"github.com/iliyamo/fyyur/internal/metrics"    // HTTP request metrics
	"github.com/iliyamo/fyyur/internal/middleware" // request id and access log middleware
)

// Options bundles what New needs to assemble the HTTP server.
type Options struct {
	Directory      *handler.DirectoryHandler // Directory serves the venue, artist and show routes
	DB             handler.Pinger            // DB backs the readiness probe
	HTTPMetrics    *metrics.HTTPMetrics      // HTTPMetrics records request metrics; nil disables it
	MetricsHandler http.Handler              // MetricsHandler serves /metrics; nil disables the route
}

// New builds an Echo instance with the middleware chain and every route
// registered.
func New(o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Recover first so a panic anywhere below still produces a 500 and an access log line.
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog())
	if o.HTTPMetrics != nil {
		e.Use(o.HTTPMetrics.Middleware())
	}

	RegisterRoutes(e, o.DB, o.MetricsHandler)
	RegisterDirectory(e, o.Directory)
	return e
}

// RegisterRoutes registers the operational routes: liveness, readiness and
// Prometheus metrics.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, metricsHandler http.Handler) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}

// RegisterDirectory registers the venue, artist and show routes.  Edits
// are reachable by PATCH and, for HTML forms, by POST on both the entity
// path and its /edit path.
func RegisterDirectory(e *echo.Echo, h *handler.DirectoryHandler) {
	e.GET("/", h.Home)

	// Venues
	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/:id", h.GetVenue)
	e.POST("/venues", h.CreateVenue)
	e.PATCH("/venues/:id", h.UpdateVenue)
	e.POST("/venues/:id", h.UpdateVenue)
	e.POST("/venues/:id/edit", h.UpdateVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)

	// Artists
	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/:id", h.GetArtist)
	e.POST("/artists", h.CreateArtist)
	e.PATCH("/artists/:id", h.UpdateArtist)
	e.POST("/artists/:id", h.UpdateArtist)
	e.POST("/artists/:id/edit", h.UpdateArtist)
	e.DELETE("/artists/:id", h.DeleteArtist)

	// Shows
	e.GET("/shows", h.ListShows)
	e.POST("/shows", h.CreateShow)
}
