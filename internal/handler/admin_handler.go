package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListUsers обработчик для GET /api/users - пользователи с количеством поездок.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserStatus обработчик для PUT /api/users/:id/status.
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req updateStatusRequest
	if err := bind(c, &req, "Invalid status"); err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.Users.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully"})
}

// GetAnalytics обработчик для GET /api/analytics.
func (h *Handler) GetAnalytics(c *gin.Context) {
	summary, err := h.Analytics.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
