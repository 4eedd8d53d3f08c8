package handler

import (
	"globetrotter/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RouterConfig - параметры маршрутизатора.
type RouterConfig struct {
	AllowedOrigin string
	AuthRate      float64 // запросов в секунду на IP для /register и /login
	AuthBurst     int
}

// NewRouter регистрирует все маршруты API.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(h.log), metrics.Middleware(), CORS(cfg.AllowedOrigin))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	limiter := NewRateLimiter(cfg.AuthRate, cfg.AuthBurst, h.log)
	authed := h.RequireAuth()
	admin := h.RequireAdmin()

	api := router.Group("/api")
	{
		api.POST("/register", limiter.Middleware(), h.Register)
		api.POST("/login", limiter.Middleware(), h.Login)

		v1 := api.Group("/v1/auth", limiter.Middleware())
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		api.GET("/trips", h.ListTrips)
		api.GET("/trips/:id", h.GetTrip)
		api.POST("/trips", authed, h.CreateTrip)
		api.DELETE("/trips/:id", authed, h.DeleteTrip)

		api.POST("/itinerary", authed, h.AddItineraryItem)
		api.GET("/trips/:id/itinerary", h.ListItinerary)
		api.GET("/trips/:id/itinerary/days", h.ListItineraryDays)

		api.GET("/pois", h.SearchPOIs)
		api.GET("/amadeus/pois", h.SearchLivePOIs)

		api.GET("/community/posts", h.ListPosts)
		api.POST("/community/posts", authed, h.CreatePost)

		api.GET("/events", h.ListEvents)

		api.GET("/users", authed, admin, h.ListUsers)
		api.PUT("/users/:id/status", authed, admin, h.UpdateUserStatus)
		api.GET("/users/:id/trips", h.ListUserTrips)
		api.GET("/analytics", authed, admin, h.GetAnalytics)
	}
	return router
}
