package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"globetrotter/internal/app"
	"globetrotter/internal/config"
	"globetrotter/internal/handler"
	"globetrotter/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Fatalf("Ошибка конфигурации: %v", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключаемся к БД, применяем миграции и создаем сервисы
	a, err := app.Open(ctx, cfg, log, app.Options{Migrate: true, Seed: cfg.DB.Seed})
	if err != nil {
		log.Fatalf("Не удалось инициализировать приложение: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Error("ошибка при закрытии соединений")
		}
	}()

	// Создаем Handler и регистрируем маршруты
	gin.SetMode(gin.ReleaseMode)
	h := handler.NewHandler(handler.Services{
		Auth:      a.Auth,
		Users:     a.Users,
		Trips:     a.Trips,
		Itinerary: a.Itinerary,
		POIs:      a.POIs,
		Community: a.Community,
		Analytics: a.Analytics,
		Calendar:  a.Calendar,
	}, a.Tokens, log)
	router := handler.NewRouter(h, handler.RouterConfig{
		AllowedOrigin: cfg.HTTP.AllowedOrigin,
		AuthRate:      cfg.HTTP.AuthRateLimit,
		AuthBurst:     cfg.HTTP.AuthRateBurst,
	})

	srv := &http.Server{Addr: ":" + cfg.HTTP.Port, Handler: router}
	go func() {
		log.Infof("HTTP-сервер слушает порт %s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Ошибка запуска сервера")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("сервер остановлен с ошибкой")
	}
}
