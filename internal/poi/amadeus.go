package poi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"globetrotter/internal/model"

	"github.com/tidwall/gjson"
)

// SearchRadiusKm - радиус поиска активностей вокруг города.
const SearchRadiusKm = 20

// ErrCityNotFound - геокодер не нашел город или вернул нечисловые координаты.
var ErrCityNotFound = errors.New("город не найден")

// AmadeusConfig - параметры клиента Amadeus.
type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// AmadeusClient - живой поиск: геокодирование города, затем активности в радиусе SearchRadiusKm.
type AmadeusClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewAmadeusClient создает клиента; таймаут по умолчанию 10 секунд.
func NewAmadeusClient(cfg AmadeusConfig) *AmadeusClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &AmadeusClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Find геокодирует город (берется первый результат) и ищет активности вокруг него.
func (c *AmadeusClient) Find(ctx context.Context, city string) ([]model.POI, error) {
	lat, lon, err := c.geocode(ctx, city)
	if err != nil {
		return nil, err
	}
	return c.activities(ctx, lat, lon)
}

func (c *AmadeusClient) geocode(ctx context.Context, city string) (float64, float64, error) {
	q := url.Values{}
	q.Set("keyword", city)
	q.Set("max", "1")
	body, err := c.get(ctx, "/v1/reference-data/locations/cities", q)
	if err != nil {
		return 0, 0, err
	}

	geo := gjson.GetBytes(body, "data.0.geoCode")
	if !geo.Exists() {
		return 0, 0, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	}
	lat, lon := geo.Get("latitude"), geo.Get("longitude")
	if lat.Type != gjson.Number || lon.Type != gjson.Number {
		return 0, 0, fmt.Errorf("%w: некорректные координаты для %q", ErrCityNotFound, city)
	}
	return lat.Float(), lon.Float(), nil
}

func (c *AmadeusClient) activities(ctx context.Context, lat, lon float64) ([]model.POI, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(SearchRadiusKm))
	body, err := c.get(ctx, "/v1/shopping/activities", q)
	if err != nil {
		return nil, err
	}

	pois := []model.POI{}
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		p := model.POI{
			ID:       item.Get("id").String(),
			Name:     item.Get("name").String(),
			Category: item.Get("category").String(),
		}
		if p.Category == "" {
			p.Category = item.Get("type").String()
		}
		for _, pic := range item.Get("pictures").Array() {
			p.Photos = append(p.Photos, pic.String())
		}
		if len(p.Photos) > 0 {
			p.Photo = p.Photos[0]
		}
		pois = append(pois, p)
		return true
	})
	return pois, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: не удалось создать запрос: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.do(req)
}

// accessToken возвращает кешированный OAuth2-токен или получает новый.
func (c *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus: не удалось создать запрос токена: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	token := gjson.GetBytes(body, "access_token").String()
	if token == "" {
		return "", errors.New("amadeus: в ответе нет access_token")
	}
	// Токен обновляется за 30 секунд до истечения.
	ttl := time.Duration(gjson.GetBytes(body, "expires_in").Int())*time.Second - 30*time.Second
	c.token = token
	c.expiresAt = time.Now().Add(ttl)
	return token, nil
}

func (c *AmadeusClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: запрос не выполнен: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("amadeus: не удалось прочитать ответ: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := gjson.GetBytes(body, "errors.0.detail").String()
		return nil, fmt.Errorf("amadeus: %s %s: статус %d %s", req.Method, req.URL.Path, resp.StatusCode, detail)
	}
	return body, nil
}
