package handler

import (
	"net/http"

	"napos/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificacionesHandler struct{ svc service.NotificacionService }

func NewNotificacionesHandler(svc service.NotificacionService) *NotificacionesHandler {
	return &NotificacionesHandler{svc: svc}
}

// Listar godoc
// @Summary Lista las alertas de stock no leídas
// @Tags notificaciones
// @Produce json
// @Success 200 {array} dto.NotificacionResponse
// @Router /v1/notificaciones [get]
func (h *NotificacionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificacionesHandler) MarcarLeida(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MarcarLeida(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Escanear godoc
// @Summary Fuerza un escaneo de stock bajo sobre todo el catálogo
// @Tags notificaciones
// @Produce json
// @Success 200 {object} map[string]int
// @Router /v1/notificaciones/escanear [post]
func (h *NotificacionesHandler) Escanear(c *gin.Context) {
	alertas, err := h.svc.EscanearStockBajo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alertas": alertas})
}
