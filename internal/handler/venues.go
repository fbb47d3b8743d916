package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/service"
)

// venueRequest is the create/edit body of a venue.  Empty fields on edit
// keep the stored value.
type venueRequest struct {
    Name               string   `json:"name" form:"name"`
    City               string   `json:"city" form:"city"`
    State              string   `json:"state" form:"state"`
    Address            string   `json:"address" form:"address"`
    Phone              string   `json:"phone" form:"phone"`
    ImageLink          string   `json:"image_link" form:"image_link"`
    FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
    Website            string   `json:"website" form:"website"`
    WebsiteLink        string   `json:"website_link" form:"website_link"` // form field name used by the original pages
    SeekingTalent      checkbox `json:"seeking_talent" form:"seeking_talent"`
    SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
    Genres             []string `json:"genres" form:"genres"`
}

func (r venueRequest) website() string {
    if r.Website != "" {
        return r.Website
    }
    return r.WebsiteLink
}

// Home returns the recently listed venues and artists.
func (h *DirectoryHandler) Home(c echo.Context) error {
    home, err := h.Dir.Home(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, home)
}

// ListVenues returns venues grouped by state and city.
func (h *DirectoryHandler) ListVenues(c echo.Context) error {
    areas, err := h.Dir.ListVenueAreas(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// SearchVenues handles POST /venues/search.
func (h *DirectoryHandler) SearchVenues(c echo.Context) error {
    var req searchRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed search request")
    }
    res, err := h.Dir.SearchVenues(c.Request().Context(), req.SearchTerm, req.CityState)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"results": res, "search_term": req.SearchTerm})
}

// GetVenue returns a venue profile with its past and upcoming shows.
func (h *DirectoryHandler) GetVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid venue id")
    }
    p, err := h.Dir.GetVenue(c.Request().Context(), id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, p)
}

// CreateVenue handles POST /venues.
func (h *DirectoryHandler) CreateVenue(c echo.Context) error {
    var req venueRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed venue")
    }
    v, err := h.Dir.CreateVenue(c.Request().Context(), service.VenueInput{
        Name:               req.Name,
        City:               req.City,
        State:              req.State,
        Address:            req.Address,
        Phone:              req.Phone,
        ImageLink:          req.ImageLink,
        FacebookLink:       req.FacebookLink,
        Website:            req.website(),
        SeekingTalent:      req.SeekingTalent.Value,
        SeekingDescription: req.SeekingDescription,
        Genres:             req.Genres,
    })
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message": "Venue " + v.Name + " was successfully listed!",
        "venue":   v,
    })
}

// UpdateVenue handles PATCH /venues/:id and the form-friendly POST
// /venues/:id/edit.
func (h *DirectoryHandler) UpdateVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid venue id")
    }
    var req venueRequest
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "malformed venue")
    }
    v, err := h.Dir.UpdateVenue(c.Request().Context(), id, service.VenueUpdate{
        Name:               nonEmpty(req.Name),
        City:               nonEmpty(req.City),
        State:              nonEmpty(req.State),
        Address:            nonEmpty(req.Address),
        Phone:              nonEmpty(req.Phone),
        ImageLink:          nonEmpty(req.ImageLink),
        FacebookLink:       nonEmpty(req.FacebookLink),
        Website:            nonEmpty(req.website()),
        SeekingTalent:      req.SeekingTalent.ptr(),
        SeekingDescription: nonEmpty(req.SeekingDescription),
        Genres:             req.Genres,
    })
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "Successfully updated the venue with id: " + c.Param("id"),
        "venue":   v,
    })
}

// DeleteVenue handles DELETE /venues/:id.  Deleting a missing venue is not
// an error; "deleted" is then 0.
func (h *DirectoryHandler) DeleteVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid venue id")
    }
    n, err := h.Dir.DeleteVenue(c.Request().Context(), id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Successfully deleted the venue!", "deleted": n})
}
