package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-showcase/internal/booking/service"
	"ms-showcase/internal/models"
)

var now = time.Date(2026, 5, 21, 21, 30, 0, 0, time.UTC)

func TestGroupVenuesByAreaConsecutive(t *testing.T) {
	venues := []models.Venue{
		{ID: 1, Name: "Hop", City: "San Francisco", State: "CA"},
		{ID: 3, Name: "Park Square", City: "San Francisco", State: "CA"},
		{ID: 2, Name: "Pianos", City: "New York", State: "NY"},
	}

	areas := service.GroupVenuesByArea(venues, now)
	require.Len(t, areas, 2)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Len(t, areas[0].Venues, 2)
	assert.Equal(t, "Park Square", areas[0].Venues[1].Name)
	assert.Equal(t, "NY", areas[1].State)
}

func TestGroupVenuesByAreaDoesNotMergeSplitRuns(t *testing.T) {
	venues := []models.Venue{
		{ID: 1, City: "Austin", State: "TX"},
		{ID: 2, City: "Boston", State: "MA"},
		{ID: 3, City: "Austin", State: "TX"},
	}

	areas := service.GroupVenuesByArea(venues, now)
	require.Len(t, areas, 3)
	assert.Equal(t, areas[0].City, areas[2].City)
	assert.Equal(t, int64(3), areas[2].Venues[0].ID)
}

func TestGroupVenuesByAreaEmpty(t *testing.T) {
	areas := service.GroupVenuesByArea(nil, now)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestCountUpcomingIsStrict(t *testing.T) {
	shows := []*models.Show{
		{StartTime: now.Add(-time.Hour)},
		{StartTime: now},
		{StartTime: now.Add(time.Minute)},
		{StartTime: now.Add(24 * time.Hour)},
	}
	assert.Equal(t, 2, service.CountUpcoming(shows, now))
}

func TestPartitionShowsBoundary(t *testing.T) {
	shows := []*models.Show{
		{ID: 1, StartTime: now.Add(-time.Second)},
		{ID: 2, StartTime: now},
		{ID: 3, StartTime: now.Add(time.Hour)},
		{ID: 4, StartTime: now.Add(-48 * time.Hour)},
	}

	past, upcoming := service.PartitionShows(shows, now)
	require.Len(t, past, 2)
	require.Len(t, upcoming, 2)
	assert.Equal(t, int64(1), past[0].ID)
	assert.Equal(t, int64(4), past[1].ID)
	assert.Equal(t, int64(2), upcoming[0].ID)

	for _, s := range upcoming {
		assert.False(t, s.StartTime.Before(now))
	}
	for _, s := range past {
		assert.True(t, s.StartTime.Before(now))
	}
}
