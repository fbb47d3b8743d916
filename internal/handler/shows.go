package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/service"
)

// showRequest is the body of POST /shows.
type showRequest struct {
    ArtistID  uint64 `json:"artist_id" form:"artist_id"`
    VenueID   uint64 `json:"venue_id" form:"venue_id"`
    StartTime string `json:"start_time" form:"start_time"`
}

// ListShows returns every show with its venue and artist.
func (h *DirectoryHandler) ListShows(c echo.Context) error {
    shows, err := h.Dir.ListShows(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// CreateShow books an artist into a venue.  A start time outside the
// artist's availability yields 409 with the window in the body.
func (h *DirectoryHandler) CreateShow(c echo.Context) error {
    var req showRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed show: artist_id and venue_id must be numeric ids")
    }
    s, err := h.Dir.CreateShow(c.Request().Context(), service.ShowInput{
        ArtistID:  req.ArtistID,
        VenueID:   req.VenueID,
        StartTime: req.StartTime,
    })
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "Show was successfully listed!", "show": s})
}
