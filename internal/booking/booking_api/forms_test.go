package booking_api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShowTimeLayouts(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T20:00:00Z", " 2035-04-01T22:00:00+02:00 "} {
		got, err := ParseShowTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseShowTime("01/04/2035")
	assert.Error(t, err)
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday May, 21 2019 at 9:30PM", FormatDatetime(ts, "full"))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDatetime(ts, "medium"))
	assert.Equal(t, "2019", FormatDatetime(ts, "2006"))
}

func TestBindVenueForm(t *testing.T) {
	b := newFormBinder()

	var form VenueForm
	errs, err := b.bind(&form, url.Values{
		"name":           {"  The Musical Hop  "},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1015 Folsom Street"},
		"genres":         {"Jazz", "Heavy Metal"},
		"seeking_talent": {"true"},
	})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "The Musical Hop", form.Name)
	assert.True(t, form.SeekingTalent)
	assert.Equal(t, "Jazz,Heavy Metal", form.Model().Genres)
}

func TestBindVenueFormRejectsUnknownGenre(t *testing.T) {
	b := newFormBinder()

	var form VenueForm
	errs, err := b.bind(&form, url.Values{
		"name":    {"Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1 Main"},
		"genres":  {"Jazz", "Polka"},
	})
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Equal(t, "Not a valid choice.", errs["genres"])
}

func TestBindVenueFormRequiresGenre(t *testing.T) {
	b := newFormBinder()

	var form VenueForm
	errs, err := b.bind(&form, url.Values{"name": {"Hop"}, "city": {"SF"}, "state": {"CA"}, "address": {"1 Main"}})
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Equal(t, "Select at least one genre.", errs["genres"])
}

func TestBindShowFormDecodeError(t *testing.T) {
	b := newFormBinder()

	var form ShowForm
	errs, err := b.bind(&form, url.Values{"artist_id": {"abc"}, "venue_id": {"2"}, "start_time": {"2035-04-01 20:00:00"}})
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Equal(t, "Not a valid value.", errs["artist_id"])
	assert.NotContains(t, errs, "venue_id")
}

func TestBindVenueFormEveryGenre(t *testing.T) {
	b := newFormBinder()

	var form VenueForm
	errs, err := b.bind(&form, url.Values{
		"name":    {"Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1 Main"},
		"genres":  Genres,
	})
	require.NoError(t, err)
	assert.Empty(t, errs)
	// longer than the old VARCHAR(120) column
	assert.Greater(t, len(form.Model().Genres), 120)
}

func TestBindVenueFormRejectsRepeatedGenre(t *testing.T) {
	b := newFormBinder()

	var form VenueForm
	errs, err := b.bind(&form, url.Values{
		"name":    {"Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1 Main"},
		"genres":  {"Jazz", "Jazz"},
	})
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Equal(t, "Pick each genre once.", errs["genres"])
}

func TestShowFormModel(t *testing.T) {
	form := ShowForm{ArtistID: 1, VenueID: 2, StartTime: "2035-04-01 20:00:00"}
	show, err := form.Model()
	require.NoError(t, err)
	assert.Equal(t, int64(1), show.ArtistID)
	assert.Equal(t, int64(2), show.VenueID)
	assert.True(t, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC).Equal(show.StartTime))

	form.StartTime = "next tuesday"
	_, err = form.Model()
	assert.Error(t, err)
}
