package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/service"
)

// artistRequest is the create/edit body of an artist.  Availability bounds
// are timestamps with an explicit offset.
type artistRequest struct {
    Name               string   `json:"name" form:"name"`
    City               string   `json:"city" form:"city"`
    State              string   `json:"state" form:"state"`
    Phone              string   `json:"phone" form:"phone"`
    ImageLink          string   `json:"image_link" form:"image_link"`
    FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
    Website            string   `json:"website" form:"website"`
    WebsiteLink        string   `json:"website_link" form:"website_link"`
    SeekingVenue       checkbox `json:"seeking_venue" form:"seeking_venue"`
    SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
    Genres             []string `json:"genres" form:"genres"`
    AvailableFrom      string   `json:"available_from" form:"available_from"`
    AvailableTo        string   `json:"available_to" form:"available_to"`
}

func (r artistRequest) website() string {
    if r.Website != "" {
        return r.Website
    }
    return r.WebsiteLink
}

// ListArtists returns every artist.
func (h *DirectoryHandler) ListArtists(c echo.Context) error {
    artists, err := h.Dir.ListArtists(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": artists})
}

// SearchArtists handles POST /artists/search.
func (h *DirectoryHandler) SearchArtists(c echo.Context) error {
    var req searchRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed search request")
    }
    res, err := h.Dir.SearchArtists(c.Request().Context(), req.SearchTerm, req.CityState)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"results": res, "search_term": req.SearchTerm})
}

// GetArtist returns an artist profile with its past and upcoming shows.
func (h *DirectoryHandler) GetArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid artist id")
    }
    p, err := h.Dir.GetArtist(c.Request().Context(), id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, p)
}

// CreateArtist handles POST /artists.
func (h *DirectoryHandler) CreateArtist(c echo.Context) error {
    var req artistRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed artist")
    }
    a, err := h.Dir.CreateArtist(c.Request().Context(), service.ArtistInput{
        Name:               req.Name,
        City:               req.City,
        State:              req.State,
        Phone:              req.Phone,
        ImageLink:          req.ImageLink,
        FacebookLink:       req.FacebookLink,
        Website:            req.website(),
        SeekingVenue:       req.SeekingVenue.Value,
        SeekingDescription: req.SeekingDescription,
        Genres:             req.Genres,
        AvailableFrom:      req.AvailableFrom,
        AvailableTo:        req.AvailableTo,
    })
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "Artist " + a.Name + " was successfully listed!",
        "artist":  a,
    })
}

// UpdateArtist handles PATCH /artists/:id and POST /artists/:id/edit.
func (h *DirectoryHandler) UpdateArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid artist id")
    }
    var req artistRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed artist")
    }
    a, err := h.Dir.UpdateArtist(c.Request().Context(), id, service.ArtistUpdate{
        Name:               nonEmpty(req.Name),
        City:               nonEmpty(req.City),
        State:              nonEmpty(req.State),
        Phone:              nonEmpty(req.Phone),
        ImageLink:          nonEmpty(req.ImageLink),
        FacebookLink:       nonEmpty(req.FacebookLink),
        Website:            nonEmpty(req.website()),
        SeekingVenue:       req.SeekingVenue.ptr(),
        SeekingDescription: nonEmpty(req.SeekingDescription),
        Genres:             req.Genres,
        AvailableFrom:      nonEmpty(req.AvailableFrom),
        AvailableTo:        nonEmpty(req.AvailableTo),
    })
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "Successfully updated the artist with id: " + c.Param("id"),
        "artist":  a,
    })
}

// DeleteArtist handles DELETE /artists/:id.
func (h *DirectoryHandler) DeleteArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid artist id")
    }
    n, err := h.Dir.DeleteArtist(c.Request().Context(), id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Successfully deleted the artist!", "deleted": n})
}
