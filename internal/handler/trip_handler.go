package handler

import (
	"net/http"

	"globetrotter/internal/service"

	"github.com/gin-gonic/gin"
)

type createTripRequest struct {
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	UserID      int    `json:"user_id"` // по умолчанию текущий пользователь
}

type addItemRequest struct {
	TripID       int     `json:"trip_id" binding:"required"`
	POIName      string  `json:"poi_name" binding:"required"`
	POICategory  *string `json:"poi_category"`
	POIPhotoURL  *string `json:"poi_photo_url"`
	ScheduledDay *int    `json:"scheduled_day"`
	Notes        *string `json:"notes"`
}

// CreateTrip обработчик для POST /api/trips.
func (h *Handler) CreateTrip(c *gin.Context) {
	actor, _ := actorFrom(c)
	var req createTripRequest
	if err := bind(c, &req, "All fields are required"); err != nil {
		h.respondError(c, err)
		return
	}
	if req.UserID == 0 {
		req.UserID = actor.UserID
	}
	id, err := h.Trips.CreateTrip(c.Request.Context(), actor, service.CreateTripInput{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UserID:      req.UserID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Trip created successfully!", "tripId": id})
}

// ListTrips обработчик для GET /api/trips - все поездки с именами владельцев.
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.Trips.ListTrips(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GetTrip обработчик для GET /api/trips/:id.
func (h *Handler) GetTrip(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	trip, err := h.Trips.GetTrip(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// ListUserTrips обработчик для GET /api/users/:id/trips.
func (h *Handler) ListUserTrips(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	trips, err := h.Trips.ListUserTrips(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// DeleteTrip обработчик для DELETE /api/trips/:id - удаляет поездку вместе с маршрутом.
func (h *Handler) DeleteTrip(c *gin.Context) {
	actor, _ := actorFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.Trips.DeleteTrip(c.Request.Context(), actor, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

// AddItineraryItem обработчик для POST /api/itinerary.
func (h *Handler) AddItineraryItem(c *gin.Context) {
	actor, _ := actorFrom(c)
	var req addItemRequest
	if err := bind(c, &req, "trip_id and poi_name are required"); err != nil {
		h.respondError(c, err)
		return
	}
	id, err := h.Itinerary.AddItem(c.Request.Context(), actor, service.AddItemInput{
		TripID:       req.TripID,
		POIName:      req.POIName,
		POICategory:  req.POICategory,
		POIPhotoURL:  req.POIPhotoURL,
		ScheduledDay: req.ScheduledDay,
		Notes:        req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to itinerary", "id": id})
}

// ListItinerary обработчик для GET /api/trips/:id/itinerary.
func (h *Handler) ListItinerary(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	items, err := h.Itinerary.ListItems(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListItineraryDays обработчик для GET /api/trips/:id/itinerary/days.
func (h *Handler) ListItineraryDays(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	days, err := h.Itinerary.ListDays(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// ListEvents обработчик для GET /api/events - поездки в виде событий календаря.
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Calendar.Events(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
