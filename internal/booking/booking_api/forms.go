package booking_api

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"ms-showcase/internal/models"
)

// ShowTimeLayouts are the accepted start_time formats, tried in order.
var ShowTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Funk", "Hip-Hop", "Heavy Metal", "Instrumental", "Jazz",
	"Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll",
	"Soul", "Other",
}

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"min=1,unique,dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"unique,dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

type ShowForm struct {
	ArtistID  int64  `form:"artist_id" validate:"required,gt=0"`
	VenueID   int64  `form:"venue_id" validate:"required,gt=0"`
	StartTime string `form:"start_time" validate:"required,showtime"`
}

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string

var errInvalidForm = errors.New("invalid form")

type formBinder struct {
	decoder  *form.Decoder
	validate *validator.Validate
}

func newFormBinder() *formBinder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("usstate", func(fl validator.FieldLevel) bool {
		return contains(States, fl.Field().String())
	})
	v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return contains(Genres, fl.Field().String())
	})
	v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
		_, err := ParseShowTime(fl.Field().String())
		return err == nil
	})
	return &formBinder{decoder: form.NewDecoder(), validate: v}
}

// bind decodes values into dst, trims string fields and validates. On
// failure the returned FieldErrors is non-empty and err is errInvalidForm.
func (b *formBinder) bind(dst interface{}, values url.Values) (FieldErrors, error) {
	for key, vals := range values {
		for i := range vals {
			vals[i] = strings.TrimSpace(vals[i])
		}
		values[key] = vals
	}

	fieldErrs := FieldErrors{}
	if err := b.decoder.Decode(dst, values); err != nil {
		var decodeErrs form.DecodeErrors
		if !errors.As(err, &decodeErrs) {
			return nil, fmt.Errorf("decode form: %w", err)
		}
		for field := range decodeErrs {
			fieldErrs[field] = "Not a valid value."
		}
	}

	if err := b.validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, fmt.Errorf("validate form: %w", err)
		}
		for _, fe := range validationErrs {
			field := strings.SplitN(fe.Field(), "[", 2)[0]
			if _, seen := fieldErrs[field]; !seen {
				fieldErrs[field] = messageFor(fe)
			}
		}
	}

	if len(fieldErrs) > 0 {
		return fieldErrs, errInvalidForm
	}
	return nil, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "phone":
		return "Phone number must look like 123-456-7890."
	case "usstate", "genre":
		return "Not a valid choice."
	case "url":
		return "Invalid URL."
	case "showtime":
		return "Use YYYY-MM-DD HH:MM:SS."
	case "min":
		if fe.Kind() == reflect.Slice {
			return "Select at least one genre."
		}
	case "unique":
		return "Pick each genre once."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "gt":
		return "This field is required."
	}
	return "Invalid value."
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ParseShowTime parses a submitted start time in any accepted layout.
// Layouts without a zone are read as UTC.
func ParseShowTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range ShowTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start time %q", value)
}

func (f *VenueForm) Model() models.Venue {
	return models.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             models.JoinGenres(f.Genres),
		ImageLink:          f.ImageLink,
		WebsiteLink:        f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

func venueFormFrom(v *models.Venue) *VenueForm {
	return &VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.GenreList(),
		ImageLink:          v.ImageLink,
		WebsiteLink:        v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f *ArtistForm) Model() models.Artist {
	return models.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             models.JoinGenres(f.Genres),
		ImageLink:          f.ImageLink,
		WebsiteLink:        f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

func artistFormFrom(a *models.Artist) *ArtistForm {
	return &ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.GenreList(),
		ImageLink:          a.ImageLink,
		WebsiteLink:        a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f *ShowForm) Model() (models.Show, error) {
	start, err := ParseShowTime(f.StartTime)
	if err != nil {
		return models.Show{}, err
	}
	return models.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: start,
	}, nil
}
