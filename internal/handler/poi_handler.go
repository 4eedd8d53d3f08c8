package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchPOIs обработчик для GET /api/pois?destination= - поиск по статическому каталогу.
func (h *Handler) SearchPOIs(c *gin.Context) {
	c.JSON(http.StatusOK, h.POIs.StaticSearch(c.Query("destination")))
}

// SearchLivePOIs обработчик для GET /api/amadeus/pois?city= - живой поиск через Amadeus.
func (h *Handler) SearchLivePOIs(c *gin.Context) {
	pois, err := h.POIs.LiveSearch(c.Request.Context(), c.Query("city"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pois)
}
