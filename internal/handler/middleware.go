package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"globetrotter/internal/apperr"
	"globetrotter/internal/model"
	"globetrotter/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	requestIDKey    = "requestId"
	actorKey        = "actor"
	requestIDHeader = "X-Request-ID"
)

// RequestID присваивает запросу ID (или берет его из заголовка X-Request-ID).
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog пишет одну запись лога на каждый запрос.
func AccessLog(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("запрос завершился ошибкой")
			return
		}
		entry.Info("запрос обработан")
	}
}

// CORS разрешает запросы с указанного origin ("*" - с любого).
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowedOrigin == "*" || origin == allowedOrigin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
			c.Header("Access-Control-Expose-Headers", requestIDHeader)
			c.Header("Access-Control-Max-Age", "3600")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireAuth проверяет Bearer-токен и статус пользователя и кладет пользователя в контекст запроса.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			h.abort(c, apperr.NewUnauthorized("Authorization header missing"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.abort(c, apperr.NewUnauthorized("Invalid Authorization header"))
			return
		}
		claims, err := h.tokens.Parse(parts[1])
		if err != nil {
			h.abort(c, apperr.NewUnauthorized("Invalid or expired token"))
			return
		}
		// Статус и роль берутся из базы: токен, выданный до блокировки, больше не действует.
		user, err := h.Users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperr.Is(err, apperr.NotFound) {
				err = apperr.NewUnauthorized("Invalid or expired token")
			}
			h.abort(c, err)
			return
		}
		if user.Status == model.StatusSuspended {
			h.abort(c, apperr.NewForbidden("Account is suspended"))
			return
		}
		c.Set(actorKey, service.Actor{UserID: user.ID, Role: user.Role})
		c.Next()
	}
}

// RequireAdmin пропускает только администраторов. Ставится после RequireAuth.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := actorFrom(c); !ok || actor.Role != model.RoleAdmin {
			h.abort(c, apperr.NewForbidden("Admins only"))
			return
		}
		c.Next()
	}
}

func (h *Handler) abort(c *gin.Context, err error) {
	h.respondError(c, err)
	c.Abort()
}

func actorFrom(c *gin.Context) (service.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}

// RateLimiter ограничивает частоту запросов с одного IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	log      logrus.FieldLogger
}

// NewRateLimiter создает ограничитель: perSecond запросов в секунду, всплеск до burst.
func NewRateLimiter(perSecond float64, burst int, log logrus.FieldLogger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		log:      log,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Простейшая очистка, фоновых задач нет.
	if len(rl.limiters) > 10000 {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Middleware возвращает обработчик gin, отвечающий 429 при превышении лимита.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.limiter(ip).Allow() {
			rl.log.WithFields(logrus.Fields{"client_ip": ip, "path": c.Request.URL.Path}).Warn("превышен лимит запросов")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
