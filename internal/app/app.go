// Package app собирает зависимости сервера и бота: базу данных, Redis, репозитории и сервисы.
package app

import (
	"context"
	"errors"
	"fmt"

	"globetrotter/internal/auth"
	"globetrotter/internal/config"
	"globetrotter/internal/database"
	"globetrotter/internal/poi"
	"globetrotter/internal/repository"
	"globetrotter/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App хранит открытые соединения и готовые сервисы.
type App struct {
	DB     *sqlx.DB
	Redis  *redis.Client // nil, если REDIS_ADDR не задан
	Tokens *auth.TokenManager

	Auth      *service.AuthService
	Users     *service.UserService
	Trips     *service.TripService
	Itinerary *service.ItineraryService
	POIs      *service.POIService
	Community *service.CommunityService
	Analytics *service.AnalyticsService
	Calendar  *service.CalendarService

	log logrus.FieldLogger
}

// Options управляют подготовкой базы данных при открытии.
type Options struct {
	Migrate bool // применить встроенные миграции
	Seed    bool // заполнить пустую базу демонстрационными данными
}

// Open подключается к PostgreSQL (и Redis, если он настроен) и создает сервисы.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, opts Options) (*App, error) {
	db, err := database.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		return nil, err
	}
	if opts.Migrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			db.Close()
			return nil, err
		}
	}
	if opts.Seed {
		if err := database.Seed(ctx, db, log); err != nil {
			db.Close()
			return nil, err
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Кеш необязателен: работаем без него.
			log.WithError(err).Warn("Redis недоступен, кеш POI отключен")
			rdb.Close()
			rdb = nil
		}
	}

	a, err := New(db, rdb, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// New создает репозитории и сервисы поверх уже открытых соединений.
func New(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	a := &App{DB: db, Redis: rdb, log: log}

	catalog, err := poi.LoadCatalog(cfg.POI.CatalogPath)
	if err != nil {
		return a, err
	}

	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)
	itemRepo := repository.NewItineraryRepository(db)
	postRepo := repository.NewPostRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	a.Tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	a.Auth = service.NewAuthService(userRepo, a.Tokens, cfg.Auth.AllowLegacyPasswords, log)
	a.Users = service.NewUserService(userRepo)
	a.Trips = service.NewTripService(tripRepo)
	a.Itinerary = service.NewItineraryService(itemRepo, tripRepo)
	a.POIs = service.NewPOIService(catalog, liveFinder(cfg.POI, rdb, log), cfg.POI.Provider)
	a.Community = service.NewCommunityService(postRepo)
	a.Analytics = service.NewAnalyticsService(analyticsRepo)
	a.Calendar = service.NewCalendarService(tripRepo, log)
	return a, nil
}

// liveFinder возвращает клиента Amadeus (с кешем, если есть Redis) или nil без учетных данных.
func liveFinder(cfg config.POIConfig, rdb *redis.Client, log logrus.FieldLogger) poi.Finder {
	if !cfg.AmadeusEnabled() {
		return nil
	}
	client := poi.NewAmadeusClient(poi.AmadeusConfig{
		BaseURL:      cfg.AmadeusBaseURL,
		ClientID:     cfg.AmadeusClientID,
		ClientSecret: cfg.AmadeusClientSecret,
		Timeout:      cfg.AmadeusTimeout,
	})
	if rdb == nil {
		return client
	}
	return poi.NewCachedFinder(client, rdb, cfg.CacheTTL, log)
}

// Close закрывает соединения с Redis и базой данных.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	return errors.Join(errs...)
}
