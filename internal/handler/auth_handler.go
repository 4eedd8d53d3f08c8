package handler

import (
	"net/http"

	"globetrotter/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register обработчик для POST /api/register - регистрирует нового пользователя.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := bind(c, &req, "All fields are required"); err != nil {
		h.respondError(c, err)
		return
	}
	id, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!", "userId": id})
}

// Login обработчик для POST /api/login - проверяет пароль и выдает токен.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req, "Email and password are required"); err != nil {
		h.respondError(c, err)
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"userId":  res.User.ID,
		"email":   res.User.Email,
		"user":    res.User,
	})
}
