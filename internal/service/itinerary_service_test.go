package service

import (
	"context"
	"testing"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItineraryOrderedByDay(t *testing.T) {
	ctx := context.Background()
	store := &memTrips{}
	owner := Actor{UserID: 1}
	tripID, err := NewTripService(store).CreateTrip(ctx, owner, CreateTripInput{Destination: "Paris", StartDate: "2024-01-01", EndDate: "2024-01-04", UserID: 1})
	require.NoError(t, err)

	svc := NewItineraryService(store, store)
	for _, day := range []*int{intPtr(3), nil, intPtr(1), intPtr(2), intPtr(1)} {
		_, err := svc.AddItem(ctx, owner, AddItemInput{TripID: tripID, POIName: "Louvre Museum", ScheduledDay: day})
		require.NoError(t, err)
	}

	items, err := svc.ListItems(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, items, 5)
	prev := 0
	for _, it := range items[:4] {
		require.NotNil(t, it.ScheduledDay)
		assert.GreaterOrEqual(t, *it.ScheduledDay, prev)
		prev = *it.ScheduledDay
	}
	assert.Nil(t, items[4].ScheduledDay)
}

func TestAddItemChecks(t *testing.T) {
	ctx := context.Background()
	store := &memTrips{}
	owner := Actor{UserID: 1}
	tripID, err := NewTripService(store).CreateTrip(ctx, owner, CreateTripInput{Destination: "Paris", StartDate: "2024-01-01", EndDate: "2024-01-04", UserID: 1})
	require.NoError(t, err)
	svc := NewItineraryService(store, store)

	_, err = svc.AddItem(ctx, owner, AddItemInput{TripID: tripID})
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.AddItem(ctx, owner, AddItemInput{TripID: 99, POIName: "x"})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = svc.AddItem(ctx, Actor{UserID: 2}, AddItemInput{TripID: tripID, POIName: "x"})
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	// Дубликаты разрешены.
	for i := 0; i < 2; i++ {
		_, err = svc.AddItem(ctx, owner, AddItemInput{TripID: tripID, POIName: "Eiffel Tower"})
		require.NoError(t, err)
	}
}

func TestGroupByDay(t *testing.T) {
	items := []model.ItineraryItem{
		{ID: 1, POIName: "a", ScheduledDay: intPtr(2)},
		{ID: 2, POIName: "b"},
		{ID: 3, POIName: "c", ScheduledDay: intPtr(1)},
		{ID: 4, POIName: "d", ScheduledDay: intPtr(2)},
	}

	days := GroupByDay(items)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, []int{2, 3}, []int{days[0].Items[0].ID, days[0].Items[1].ID})
	assert.Equal(t, 2, days[1].Day)
	assert.Len(t, days[1].Items, 2)

	assert.Empty(t, GroupByDay(nil))
}
