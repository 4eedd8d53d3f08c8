package poi

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"globetrotter/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// cacheStore - подмножество команд Redis, которое использует кеш.
type cacheStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedFinder кеширует успешные ответы другого Finder в Redis.
// Ошибки Redis не прерывают поиск: запрос идет напрямую.
type CachedFinder struct {
	next  Finder
	store cacheStore
	ttl   time.Duration
	log   logrus.FieldLogger
}

// NewCachedFinder оборачивает next кешем с временем жизни ttl.
func NewCachedFinder(next Finder, rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *CachedFinder {
	return &CachedFinder{next: next, store: rdb, ttl: ttl, log: log}
}

func cacheKey(city string) string {
	return "poi:" + strings.ToLower(strings.Join(strings.Fields(city), " "))
}

// Find возвращает закешированный список или обращается к next и сохраняет результат.
func (c *CachedFinder) Find(ctx context.Context, city string) ([]model.POI, error) {
	key := cacheKey(city)

	data, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var pois []model.POI
		if err := json.Unmarshal(data, &pois); err == nil {
			return pois, nil
		}
		c.log.WithField("key", key).Warn("поврежденная запись кеша POI")
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).Warn("кеш POI недоступен")
	}

	pois, err := c.next.Find(ctx, city)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(pois); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.WithError(err).Warn("не удалось сохранить POI в кеш")
		}
	}
	return pois, nil
}
