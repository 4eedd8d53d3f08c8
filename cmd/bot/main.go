package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"globetrotter/internal/app"
	"globetrotter/internal/bot"
	"globetrotter/internal/config"
	"globetrotter/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Fatalf("Ошибка конфигурации: %v", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.ValidateBot(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Схему создает API-сервер; бот только читает данные
	a, err := app.Open(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Fatalf("Не удалось инициализировать приложение: %v", err)
	}
	defer a.Close()

	// Инициализация Telegram Bot API
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("Ошибка инициализации бота: %v", err)
	}
	log.Infof("Запущен бот %s", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	b := bot.New(api, bot.Services{
		POIs:      a.POIs,
		Trips:     a.Trips,
		Itinerary: a.Itinerary,
		Calendar:  a.Calendar,
		Community: a.Community,
		Analytics: a.Analytics,
	}, cfg.Bot.AdminIDs(), log)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()
	b.Run(ctx, updates)
	log.Info("Бот остановлен")
}
