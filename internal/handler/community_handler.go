package handler

import (
	"net/http"
	"strconv"

	"globetrotter/internal/apperr"

	"github.com/gin-gonic/gin"
)

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListPosts обработчик для GET /api/community/posts. Необязательный параметр limit.
func (h *Handler) ListPosts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(c, apperr.NewValidation("Invalid limit"))
			return
		}
		limit = n
	}
	posts, err := h.Community.Feed(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost обработчик для POST /api/community/posts.
func (h *Handler) CreatePost(c *gin.Context) {
	actor, _ := actorFrom(c)
	var req createPostRequest
	if err := bind(c, &req, "Content is required"); err != nil {
		h.respondError(c, err)
		return
	}
	id, err := h.Community.CreatePost(c.Request.Context(), actor, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "id": id})
}
