package handler

import (
	"errors"
	"net/http"
	"strconv"

	"globetrotter/internal/apperr"
	"globetrotter/internal/auth"
	"globetrotter/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services - сервисы, которые использует HTTP-слой.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Trips     *service.TripService
	Itinerary *service.ItineraryService
	POIs      *service.POIService
	Community *service.CommunityService
	Analytics *service.AnalyticsService
	Calendar  *service.CalendarService
}

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	Services
	tokens *auth.TokenManager
	log    logrus.FieldLogger
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(s Services, tokens *auth.TokenManager, log logrus.FieldLogger) *Handler {
	return &Handler{Services: s, tokens: tokens, log: log}
}

// Health обработчик для GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError отображает ошибку приложения в HTTP-ответ.
// Причина внутренних ошибок пишется только в лог.
func (h *Handler) respondError(c *gin.Context, err error) {
	msg := "Internal server error"
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		h.requestLog(c).WithError(err).Error("ошибка обработки запроса")
	}
	c.JSON(statusFor(kind), gin.H{"error": msg})
}

func (h *Handler) requestLog(c *gin.Context) logrus.FieldLogger {
	return h.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
}

// pathID разбирает числовой параметр пути.
func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation("Invalid " + name)
	}
	return id, nil
}

// bind разбирает JSON-тело запроса; ошибка разбора - это ошибка валидации.
func bind(c *gin.Context, dst any, msg string) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.NewValidation(msg)
	}
	return nil
}
