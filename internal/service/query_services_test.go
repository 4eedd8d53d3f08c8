package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
	"globetrotter/internal/poi"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinder struct {
	pois []model.POI
	err  error
}

func (f stubFinder) Find(context.Context, string) ([]model.POI, error) { return f.pois, f.err }

func TestPOIServiceStatic(t *testing.T) {
	catalog, err := poi.LoadCatalog("")
	require.NoError(t, err)
	svc := NewPOIService(catalog, nil, ProviderStatic)

	assert.Equal(t, "Eiffel Tower", svc.StaticSearch("Paris, France")[0].Name)
	assert.Equal(t, "Local Market", svc.StaticSearch("Lima")[0].Name)

	pois, err := svc.Search(context.Background(), "tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Shibuya Crossing", pois[0].Name)
}

func TestPOIServiceLive(t *testing.T) {
	ctx := context.Background()
	catalog, err := poi.LoadCatalog("")
	require.NoError(t, err)

	_, err = NewPOIService(catalog, nil, ProviderStatic).LiveSearch(ctx, "Paris")
	assert.True(t, apperr.Is(err, apperr.Internal))
	assert.Contains(t, err.Error(), "not configured")

	live := NewPOIService(catalog, stubFinder{pois: []model.POI{{ID: "A1"}}}, ProviderAmadeus)
	_, err = live.LiveSearch(ctx, "")
	assert.True(t, apperr.Is(err, apperr.Validation))
	pois, err := live.Search(ctx, "Paris")
	require.NoError(t, err)
	assert.Equal(t, "A1", pois[0].ID)

	notFound := NewPOIService(catalog, stubFinder{err: poi.ErrCityNotFound}, ProviderAmadeus)
	_, err = notFound.LiveSearch(ctx, "Atlantis")
	assert.True(t, apperr.Is(err, apperr.NotFound))

	broken := NewPOIService(catalog, stubFinder{err: errors.New("timeout")}, ProviderAmadeus)
	_, err = broken.LiveSearch(ctx, "Paris")
	assert.True(t, apperr.Is(err, apperr.Internal))
}

type memPosts struct {
	posts []model.FeedPost
}

func (m *memPosts) Create(_ context.Context, p *model.Post) (int, error) {
	p.ID = len(m.posts) + 1
	m.posts = append(m.posts, model.FeedPost{Post: *p, Name: "Alice", Email: "alice@example.com"})
	return p.ID, nil
}

func (m *memPosts) ListFeed(_ context.Context, limit int) ([]model.FeedPost, error) {
	out := []model.FeedPost{}
	for i := len(m.posts) - 1; i >= 0; i-- {
		out = append(out, m.posts[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestCommunityFeed(t *testing.T) {
	ctx := context.Background()
	svc := NewCommunityService(&memPosts{})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }

	_, err := svc.CreatePost(ctx, Actor{UserID: 1}, "  ")
	assert.True(t, apperr.Is(err, apperr.Validation))

	for _, text := range []string{"first", "second"} {
		_, err := svc.CreatePost(ctx, Actor{UserID: 1}, text)
		require.NoError(t, err)
	}

	feed, err := svc.Feed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Content)
	assert.Equal(t, "2024-05-01T11:00:00Z", feed[0].Timestamp)
	assert.Equal(t, model.PostAuthor{ID: 1, Name: "Alice", Avatar: "https://i.pravatar.cc/150?u=alice%40example.com"}, feed[0].User)

	latest, err := svc.Feed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}

func TestAnalyticsSummary(t *testing.T) {
	ctx := context.Background()
	users := &memUsers{users: []model.User{{ID: 1}, {ID: 2}}}
	trips := &memTrips{}
	for _, dest := range []string{"Paris", "Tokyo", "Paris", "Rome", "Lima", "Oslo", "Kyiv"} {
		_, err := trips.Create(ctx, &model.Trip{Destination: dest})
		require.NoError(t, err)
	}

	summary, err := NewAnalyticsService(memAnalytics{users, trips}).Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalUsers)
	assert.Equal(t, 7, summary.TotalTrips)
	require.Len(t, summary.PopularDestinations, PopularDestinationsLimit)
	assert.Equal(t, model.NamedValue{Name: "Paris", Value: 2}, summary.PopularDestinations[0])
	assert.True(t, summary.DemographicsStub)
	require.Len(t, summary.UserDemographics, 5)
	for _, b := range summary.UserDemographics {
		assert.Zero(t, b.Value)
	}
}

func TestCalendarDropsBadDates(t *testing.T) {
	ctx := context.Background()
	trips := &memTrips{trips: []model.Trip{
		{ID: 1, Destination: "Paris", StartDate: "2024-07-01", EndDate: "2024-07-10"},
		{ID: 2, Destination: "Nowhere", StartDate: "someday", EndDate: "2024-07-10"},
		{ID: 3, Destination: "Tokyo", StartDate: "2024-08-01T09:00:00Z", EndDate: "2024-08-05"},
	}}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	events, err := NewCalendarService(trips, log).Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Paris", events[0].Title)
	assert.Equal(t, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), events[0].End)
	assert.Equal(t, 3, events[1].ID)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestUserServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	users := &memUsers{users: []model.User{{ID: 1, Status: model.StatusActive}}}
	svc := NewUserService(users)

	assert.True(t, apperr.Is(svc.UpdateStatus(ctx, 1, "Banned"), apperr.Validation))
	assert.True(t, apperr.Is(svc.UpdateStatus(ctx, 9, model.StatusSuspended), apperr.NotFound))
	require.NoError(t, svc.UpdateStatus(ctx, 1, model.StatusSuspended))

	u, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuspended, u.Status)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
