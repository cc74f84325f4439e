package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"ms-showcase/internal/booking/db"
	"ms-showcase/internal/database"
	"ms-showcase/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	bunDB, err := database.NewInMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	t.Cleanup(func() { bunDB.Close() })
	return &db.DB{Bun: bunDB}, bunDB
}

func seedVenue(t *testing.T, d *db.DB, name, city, state string) *models.Venue {
	v := &models.Venue{Name: name, City: city, State: state, Address: "1 Main St", Genres: "Jazz,Folk"}
	require.NoError(t, d.CreateVenue(context.Background(), v))
	require.NotZero(t, v.ID)
	return v
}

func seedArtist(t *testing.T, d *db.DB, name string) *models.Artist {
	a := &models.Artist{Name: name, City: "San Francisco", State: "CA", ImageLink: "https://img/" + name}
	require.NoError(t, d.CreateArtist(context.Background(), a))
	require.NotZero(t, a.ID)
	return a
}

func seedShow(t *testing.T, d *db.DB, artistID, venueID int64, start time.Time) *models.Show {
	s := &models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}
	require.NoError(t, d.CreateShow(context.Background(), s))
	return s
}

func TestCreateAndGetVenue(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()

	venue := &models.Venue{
		Name:               "The Musical Hop",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1015 Folsom Street",
		Phone:              "123-123-1234",
		Genres:             "Jazz,Reggae,Swing",
		ImageLink:          "https://images.example/hop.jpg",
		WebsiteLink:        "https://www.themusicalhop.com",
		FacebookLink:       "https://www.facebook.com/TheMusicalHop",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist",
	}
	require.NoError(t, d.CreateVenue(ctx, venue))

	got, err := d.GetVenueByID(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, venue.Name, got.Name)
	assert.Equal(t, venue.Address, got.Address)
	assert.Equal(t, venue.Genres, got.Genres)
	assert.Equal(t, venue.FacebookLink, got.FacebookLink)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, venue.SeekingDescription, got.SeekingDescription)

	_, err = d.GetVenueByID(ctx, venue.ID+100)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestUpdateVenue(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, d, "Park Square", "Seattle", "WA")

	venue.Name = "Park Square Live"
	venue.SeekingTalent = true
	require.NoError(t, d.UpdateVenue(ctx, venue))

	got, err := d.GetVenueByID(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Park Square Live", got.Name)
	assert.True(t, got.SeekingTalent)

	missing := &models.Venue{ID: venue.ID + 1, Name: "ghost"}
	assert.ErrorIs(t, d.UpdateVenue(ctx, missing), db.ErrNotFound)
}

func TestDeleteVenueCascadesShows(t *testing.T) {
	d, bunDB := setupTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, d, "Dueling Pianos", "New York", "NY")
	other := seedVenue(t, d, "Other", "New York", "NY")
	artist := seedArtist(t, d, "Guns N Petals")
	seedShow(t, d, artist.ID, venue.ID, time.Now().Add(time.Hour))
	seedShow(t, d, artist.ID, other.ID, time.Now().Add(time.Hour))

	deleted, err := d.DeleteVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dueling Pianos", deleted.Name)

	_, err = d.GetVenueByID(ctx, venue.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	count, err := bunDB.NewSelect().Model((*models.Show)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = d.DeleteVenue(ctx, venue.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDeleteArtistCascadesShows(t *testing.T) {
	d, bunDB := setupTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, d, "Hall", "Austin", "TX")
	artist := seedArtist(t, d, "Matt Quevedo")
	seedShow(t, d, artist.ID, venue.ID, time.Now().Add(-time.Hour))

	deleted, err := d.DeleteArtist(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, artist.ID, deleted.ID)

	count, err := bunDB.NewSelect().Model((*models.Show)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSearchVenues(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	seedVenue(t, d, "The Musical Hop", "San Francisco", "CA")
	seedVenue(t, d, "Park Square Live Music & Coffee", "San Francisco", "CA")
	seedVenue(t, d, "The Dueling Pianos Bar", "New York", "NY")
	seedVenue(t, d, "100% Rock", "Austin", "TX")

	got, err := d.SearchVenues(ctx, "hop")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Musical Hop", got[0].Name)

	got, err = d.SearchVenues(ctx, "MUSIC")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = d.SearchVenues(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Rock", got[0].Name)

	got, err = d.SearchVenues(ctx, "nothing like this")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchArtists(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	seedArtist(t, d, "Guns N Petals")
	seedArtist(t, d, "Matt Quevedo")
	seedArtist(t, d, "The Wild Sax Band")

	got, err := d.SearchArtists(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = d.SearchArtists(ctx, "band")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Wild Sax Band", got[0].Name)
}

func TestSearchVenuesNonASCII(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	seedVenue(t, d, "École Hall", "Montreal", "QC")
	seedVenue(t, d, "Ecole Annex", "Montreal", "QC")

	for _, term := range []string{"École", "école", "ÉCOLE", "cole h"} {
		got, err := d.SearchVenues(ctx, term)
		require.NoError(t, err, term)
		require.Len(t, got, 1, term)
		assert.Equal(t, "École Hall", got[0].Name, term)
	}

	got, err := d.SearchVenues(ctx, "hall")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = d.SearchVenues(ctx, "é%")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchArtistsNonASCII(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	seedArtist(t, d, "Mötley Crüe")
	seedArtist(t, d, "Motley Band")

	got, err := d.SearchArtists(ctx, "MÖTLEY")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mötley Crüe", got[0].Name)
}

func TestListVenuesOrdersByArea(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	seedVenue(t, d, "B", "San Francisco", "CA")
	seedVenue(t, d, "A", "New York", "NY")
	seedVenue(t, d, "C", "San Francisco", "CA")

	venues, err := d.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 3)
	assert.Equal(t, "New York", venues[0].City)
	assert.Equal(t, "B", venues[1].Name)
	assert.Equal(t, "C", venues[2].Name)
}

func TestGetVenueWithShowsLoadsArtists(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, d, "Hop", "San Francisco", "CA")
	artist := seedArtist(t, d, "Guns N Petals")
	seedShow(t, d, artist.ID, venue.ID, time.Now().Add(48*time.Hour))
	seedShow(t, d, artist.ID, venue.ID, time.Now().Add(-48*time.Hour))

	got, err := d.GetVenueWithShows(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, got.Shows, 2)
	assert.True(t, got.Shows[0].StartTime.Before(got.Shows[1].StartTime))
	require.NotNil(t, got.Shows[0].Artist)
	assert.Equal(t, "Guns N Petals", got.Shows[0].Artist.Name)

	_, err = d.GetVenueWithShows(ctx, 9999)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCreateShowRequiresParents(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, d, "Hop", "San Francisco", "CA")
	artist := seedArtist(t, d, "Guns N Petals")

	err := d.CreateShow(ctx, &models.Show{ArtistID: artist.ID + 10, VenueID: venue.ID, StartTime: time.Now()})
	assert.ErrorIs(t, err, db.ErrInvalidReference)
	var refErr *db.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "artist_id", refErr.Column)

	err = d.CreateShow(ctx, &models.Show{ArtistID: artist.ID, VenueID: venue.ID + 10, StartTime: time.Now()})
	assert.ErrorIs(t, err, db.ErrInvalidReference)

	shows, err := d.ListShows(ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestListShowsJoinsParents(t *testing.T) {
	d, _ := setupTestDB(t)
	ctx := context.Background()
	venue := seedVenue(t, d, "Hop", "San Francisco", "CA")
	artist := seedArtist(t, d, "Guns N Petals")
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	seedShow(t, d, artist.ID, venue.ID, start)

	shows, err := d.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "Hop", shows[0].Venue.Name)
	assert.Equal(t, "Guns N Petals", shows[0].Artist.Name)
	assert.Equal(t, "https://img/Guns N Petals", shows[0].Artist.ImageLink)
	assert.True(t, start.Equal(shows[0].StartTime))
}
