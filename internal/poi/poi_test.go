package poi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"globetrotter/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(pois []model.POI) []string {
	out := make([]string, len(pois))
	for i, p := range pois {
		out[i] = p.Name
	}
	return out
}

func TestCatalogLookup(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	paris := c.Lookup("Weekend in PARIS")
	assert.Equal(t, []string{"Eiffel Tower", "Louvre Museum", "Cathédrale Notre-Dame", "Montmartre"}, names(paris))

	tokyo := c.Lookup("tokyo")
	assert.Len(t, tokyo, 4)
	assert.Equal(t, "Shibuya Crossing", tokyo[0].Name)

	def := c.Lookup("Reykjavik")
	assert.Equal(t, []string{"Local Market", "City Park"}, names(def))

	assert.Equal(t, names(def), names(c.Lookup("")))
}

func TestCatalogLookupReturnsCopy(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	first := c.Lookup("paris")
	first[0].Name = "испорчено"
	assert.Equal(t, "Eiffel Tower", c.Lookup("paris")[0].Name)
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pois.yaml")
	doc := "cities:\n  - key: Rome\n    pois:\n      - id: r1\n        name: Colosseum\n        category: Landmark\ndefault:\n  - id: d1\n    name: Square\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Colosseum"}, names(c.Lookup("rome, italy")))
	assert.Equal(t, []string{"Square"}, names(c.Lookup("paris")))
}

func TestParseCatalogRequiresDefault(t *testing.T) {
	_, err := ParseCatalog([]byte("cities: []\n"))
	assert.Error(t, err)
}

// amadeusStub поднимает тестовый сервер с тремя эндпоинтами Amadeus.
func amadeusStub(t *testing.T, citiesBody string, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		fmt.Fprint(w, `{"access_token":"tok","expires_in":1799}`)
	})
	mux.HandleFunc("/v1/reference-data/locations/cities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("max"))
		fmt.Fprint(w, citiesBody)
	})
	mux.HandleFunc("/v1/shopping/activities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("radius"))
		assert.Equal(t, "48.85341", r.URL.Query().Get("latitude"))
		assert.Equal(t, "2.3488", r.URL.Query().Get("longitude"))
		fmt.Fprint(w, `{"data":[
			{"id":"A1","type":"activity","name":"Seine cruise","pictures":["https://img/1.jpg","https://img/2.jpg"]},
			{"id":"A2","type":"activity","name":"Louvre tour","pictures":[]}
		]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAmadeusFind(t *testing.T) {
	var tokenCalls int32
	srv := amadeusStub(t, `{"data":[{"name":"PARIS","geoCode":{"latitude":48.85341,"longitude":2.3488}}]}`, &tokenCalls)
	c := NewAmadeusClient(AmadeusConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret"})

	pois, err := c.Find(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, pois, 2)
	assert.Equal(t, model.POI{
		ID: "A1", Name: "Seine cruise", Category: "activity",
		Photo: "https://img/1.jpg", Photos: []string{"https://img/1.jpg", "https://img/2.jpg"},
	}, pois[0])
	assert.Empty(t, pois[1].Photo)

	_, err = c.Find(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "токен должен переиспользоваться")
}

func TestAmadeusCityNotFound(t *testing.T) {
	var tokenCalls int32
	srv := amadeusStub(t, `{"data":[]}`, &tokenCalls)
	c := NewAmadeusClient(AmadeusConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret"})

	_, err := c.Find(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, ErrCityNotFound))
}

func TestAmadeusNonNumericCoordinates(t *testing.T) {
	var tokenCalls int32
	srv := amadeusStub(t, `{"data":[{"geoCode":{"latitude":"n/a","longitude":2.3}}]}`, &tokenCalls)
	c := NewAmadeusClient(AmadeusConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret"})

	_, err := c.Find(context.Background(), "Paris")
	assert.True(t, errors.Is(err, ErrCityNotFound))
}

func TestAmadeusUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"errors":[{"detail":"boom"}]}`)
	}))
	defer srv.Close()
	c := NewAmadeusClient(AmadeusConfig{BaseURL: srv.URL, ClientID: "id", ClientSecret: "secret"})

	_, err := c.Find(context.Background(), "Paris")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCityNotFound))
	assert.Contains(t, err.Error(), "500")
}

type fakeStore struct {
	data   map[string]string
	getErr error
	sets   int
}

func (s *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	if s.getErr != nil {
		return redis.NewStringResult("", s.getErr)
	}
	v, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *fakeStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	s.sets++
	s.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

type countingFinder struct {
	calls int
	pois  []model.POI
	err   error
}

func (f *countingFinder) Find(context.Context, string) ([]model.POI, error) {
	f.calls++
	return f.pois, f.err
}

func TestCachedFinder(t *testing.T) {
	log, _ := test.NewNullLogger()
	next := &countingFinder{pois: []model.POI{{ID: "1", Name: "Eiffel Tower"}}}
	store := &fakeStore{data: map[string]string{}}
	c := &CachedFinder{next: next, store: store, ttl: time.Hour, log: log}

	first, err := c.Find(context.Background(), "  Paris ")
	require.NoError(t, err)
	second, err := c.Find(context.Background(), "paris")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, store.sets)

	var cached []model.POI
	require.NoError(t, json.Unmarshal([]byte(store.data["poi:paris"]), &cached))
	assert.Equal(t, "Eiffel Tower", cached[0].Name)
}

func TestCachedFinderBypassesBrokenRedis(t *testing.T) {
	log, hook := test.NewNullLogger()
	next := &countingFinder{pois: []model.POI{{ID: "1"}}}
	store := &fakeStore{data: map[string]string{}, getErr: errors.New("connection refused")}
	c := &CachedFinder{next: next, store: store, ttl: time.Hour, log: log}

	pois, err := c.Find(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Len(t, pois, 1)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestCachedFinderDoesNotCacheErrors(t *testing.T) {
	log, _ := test.NewNullLogger()
	next := &countingFinder{err: ErrCityNotFound}
	store := &fakeStore{data: map[string]string{}}
	c := &CachedFinder{next: next, store: store, ttl: time.Hour, log: log}

	_, err := c.Find(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, ErrCityNotFound))
	assert.Zero(t, store.sets)
}
