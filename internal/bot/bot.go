// Package bot - Telegram-бот поверх сервисов GlobeTrotter.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
	"globetrotter/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	feedLimit      = 5
	maxPOIButtons  = 8
	poiCallbackPfx = "POI_"
)

// Sender - часть tgbotapi.BotAPI, которую использует бот.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Services - сервисы, к которым обращается бот.
type Services struct {
	POIs      *service.POIService
	Trips     *service.TripService
	Itinerary *service.ItineraryService
	Calendar  *service.CalendarService
	Community *service.CommunityService
	Analytics *service.AnalyticsService
}

// Bot обрабатывает команды и нажатия inline-кнопок.
type Bot struct {
	api    Sender
	svc    Services
	admins map[int64]bool
	log    logrus.FieldLogger

	mu          sync.Mutex
	lastResults map[int64][]model.POI // chatID -> результаты последнего /pois
}

// New создает бота. admins - chat id, которым доступна команда /stats.
func New(api Sender, svc Services, admins map[int64]bool, log logrus.FieldLogger) *Bot {
	return &Bot{api: api, svc: svc, admins: admins, log: log, lastResults: make(map[int64][]model.POI)}
}

// Run обрабатывает обновления, пока не закроется канал или не отменится ctx.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate обрабатывает одно обновление.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			b.log.WithError(err).Debug("не удалось ответить на callback")
		}
		if cq.Message != nil {
			b.handleCallback(cq.Message.Chat.ID, cq.Data)
		}
		return
	}

	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, "Здравствуйте! Команды:\n/pois <город> - что посмотреть\n/trip <id> - маршрут поездки\n/events - календарь поездок\n/feed - лента сообщества")
	case "pois":
		b.handlePOIs(ctx, chatID, args)
	case "trip":
		b.handleTrip(ctx, chatID, args)
	case "events":
		events, err := b.svc.Calendar.Events(ctx)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, FormatEvents(events))
	case "feed":
		posts, err := b.svc.Community.Feed(ctx, feedLimit)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, FormatFeed(posts))
	case "stats":
		if !b.admins[chatID] {
			b.reply(chatID, "Команда доступна только администраторам.")
			return
		}
		summary, err := b.svc.Analytics.Summary(ctx)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, FormatStats(summary))
	default:
		b.reply(chatID, "Неизвестная команда. Введите /help.")
	}
}

func (b *Bot) handlePOIs(ctx context.Context, chatID int64, city string) {
	if city == "" {
		b.reply(chatID, "Используйте: /pois <город>")
		return
	}
	pois, err := b.svc.POIs.Search(ctx, city)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	if len(pois) > maxPOIButtons {
		pois = pois[:maxPOIButtons]
	}

	b.mu.Lock()
	b.lastResults[chatID] = pois
	b.mu.Unlock()

	msg := tgbotapi.NewMessage(chatID, FormatPOIs(city, pois))
	if len(pois) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(pois))
		for i, p := range pois {
			btn := tgbotapi.NewInlineKeyboardButtonData(ButtonLabel(p.Name), fmt.Sprintf("%s%d", poiCallbackPfx, i))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	b.send(msg)
}

func (b *Bot) handleCallback(chatID int64, data string) {
	if !strings.HasPrefix(data, poiCallbackPfx) {
		return
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(data, poiCallbackPfx))
	b.mu.Lock()
	results := b.lastResults[chatID]
	b.mu.Unlock()
	if err != nil || idx < 0 || idx >= len(results) {
		b.reply(chatID, "Результаты поиска устарели. Повторите /pois.")
		return
	}

	p := results[idx]
	if p.Photo == "" {
		b.reply(chatID, FormatPOI(p))
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(p.Photo))
	photo.Caption = FormatPOI(p)
	b.send(photo)
}

func (b *Bot) handleTrip(ctx context.Context, chatID int64, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		b.reply(chatID, "Используйте: /trip <id>")
		return
	}
	trip, err := b.svc.Trips.GetTrip(ctx, id)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	days, err := b.svc.Itinerary.ListDays(ctx, id)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, FormatTrip(trip, days))
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// replyError показывает пользователю сообщение ошибки; внутренние ошибки только логируются.
func (b *Bot) replyError(chatID int64, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind != apperr.Internal {
		b.reply(chatID, ae.Message)
		return
	}
	b.log.WithError(err).WithField("chat_id", chatID).Error("ошибка обработки команды")
	b.reply(chatID, "Произошла ошибка, попробуйте позже.")
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.WithError(err).Warn("не удалось отправить сообщение")
	}
}
