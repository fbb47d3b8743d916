package service

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

// VenueInput carries the fields of a new venue.
type VenueInput struct {
	Name               string   `json:"name" validate:"required,max=255"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,max=120"`
	Address            string   `json:"address" validate:"required,max=255"`
	Phone              string   `json:"phone" validate:"max=120"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=500"`
	Website            string   `json:"website" validate:"omitempty,url,max=500"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" validate:"max=500"`
	Genres             []string `json:"genres" validate:"dive,max=120"`
}

// VenueUpdate carries a partial venue edit.  Nil or blank fields are left
// untouched, as is an empty genre list.
type VenueUpdate struct {
	Name               *string  `json:"name" validate:"omitempty,max=255"`
	City               *string  `json:"city" validate:"omitempty,max=120"`
	State              *string  `json:"state" validate:"omitempty,max=120"`
	Address            *string  `json:"address" validate:"omitempty,max=255"`
	Phone              *string  `json:"phone" validate:"omitempty,max=120"`
	ImageLink          *string  `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       *string  `json:"facebook_link" validate:"omitempty,url,max=500"`
	Website            *string  `json:"website" validate:"omitempty,url,max=500"`
	SeekingTalent      *bool    `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description" validate:"omitempty,max=500"`
	Genres             []string `json:"genres" validate:"dive,max=120"`
}

// ArtistInput carries the fields of a new artist.  AvailableFrom and
// AvailableTo are optional timestamps with an explicit offset.
type ArtistInput struct {
	Name               string   `json:"name" validate:"required,max=255"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,max=120"`
	Phone              string   `json:"phone" validate:"max=120"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=500"`
	Website            string   `json:"website" validate:"omitempty,url,max=500"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" validate:"max=500"`
	Genres             []string `json:"genres" validate:"dive,max=120"`
	AvailableFrom      string   `json:"available_from"`
	AvailableTo        string   `json:"available_to"`
}

// ArtistUpdate carries a partial artist edit; see VenueUpdate.
type ArtistUpdate struct {
	Name               *string  `json:"name" validate:"omitempty,max=255"`
	City               *string  `json:"city" validate:"omitempty,max=120"`
	State              *string  `json:"state" validate:"omitempty,max=120"`
	Phone              *string  `json:"phone" validate:"omitempty,max=120"`
	ImageLink          *string  `json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       *string  `json:"facebook_link" validate:"omitempty,url,max=500"`
	Website            *string  `json:"website" validate:"omitempty,url,max=500"`
	SeekingVenue       *bool    `json:"seeking_venue"`
	SeekingDescription *string  `json:"seeking_description" validate:"omitempty,max=500"`
	Genres             []string `json:"genres" validate:"dive,max=120"`
	AvailableFrom      *string  `json:"available_from"`
	AvailableTo        *string  `json:"available_to"`
}

// ShowInput books an artist into a venue.  StartTime must carry an
// explicit offset.
type ShowInput struct {
	ArtistID  uint64 `json:"artist_id" validate:"required"`
	VenueID   uint64 `json:"venue_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their wire name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check validates s and converts the first failure into a booking
// validation error.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return booking.Validationf("invalid input")
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return booking.Validationf("%s is required", field)
	case "url":
		return booking.Validationf("%s must be a valid URL", field)
	case "max":
		return booking.Validationf("%s must be at most %s characters", field, fe.Param())
	default:
		return booking.Validationf("%s is invalid", field)
	}
}

func (in *VenueInput) normalize() {
	trimAll(&in.Name, &in.City, &in.State, &in.Address, &in.Phone, &in.ImageLink,
		&in.FacebookLink, &in.Website, &in.SeekingDescription)
	in.Genres = model.NewGenres(in.Genres...)
}

func (in *ArtistInput) normalize() {
	trimAll(&in.Name, &in.City, &in.State, &in.Phone, &in.ImageLink, &in.FacebookLink,
		&in.Website, &in.SeekingDescription, &in.AvailableFrom, &in.AvailableTo)
	in.Genres = model.NewGenres(in.Genres...)
}

func (in *VenueUpdate) normalize() {
	for _, p := range []**string{&in.Name, &in.City, &in.State, &in.Address, &in.Phone,
		&in.ImageLink, &in.FacebookLink, &in.Website, &in.SeekingDescription} {
		*p = blankToNil(*p)
	}
	in.Genres = model.NewGenres(in.Genres...)
}

func (in *ArtistUpdate) normalize() {
	for _, p := range []**string{&in.Name, &in.City, &in.State, &in.Phone, &in.ImageLink,
		&in.FacebookLink, &in.Website, &in.SeekingDescription, &in.AvailableFrom, &in.AvailableTo} {
		*p = blankToNil(*p)
	}
	in.Genres = model.NewGenres(in.Genres...)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// blankToNil trims s and drops it when nothing is left.
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// optionalInstant parses an optional timestamp field; blank yields nil.
func optionalInstant(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := booking.ParseInstant(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (in VenueInput) venue() *model.Venue {
	return &model.Venue{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Address:            in.Address,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
		Genres:             model.Genres(in.Genres),
	}
}

func (in VenueUpdate) patch() model.VenuePatch {
	return model.VenuePatch{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Address:            in.Address,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
		Genres:             model.Genres(in.Genres),
	}
}

func (in ArtistInput) artist() (*model.Artist, error) {
	from, err := optionalInstant("available_from", in.AvailableFrom)
	if err != nil {
		return nil, err
	}
	to, err := optionalInstant("available_to", in.AvailableTo)
	if err != nil {
		return nil, err
	}
	return &model.Artist{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
		Genres:             model.Genres(in.Genres),
		AvailableFrom:      from,
		AvailableTo:        to,
	}, nil
}

func (in ArtistUpdate) patch() (model.ArtistPatch, error) {
	p := model.ArtistPatch{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
		Genres:             model.Genres(in.Genres),
	}
	var err error
	if in.AvailableFrom != nil {
		if p.AvailableFrom, err = optionalInstant("available_from", *in.AvailableFrom); err != nil {
			return model.ArtistPatch{}, err
		}
	}
	if in.AvailableTo != nil {
		if p.AvailableTo, err = optionalInstant("available_to", *in.AvailableTo); err != nil {
			return model.ArtistPatch{}, err
		}
	}
	return p, nil
}
