package handler

import (
	"net/http"

	"napos/internal/dto"
	"napos/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct {
	svc     service.ClienteService
	credito service.CreditoService
}

func NewClientesHandler(svc service.ClienteService, credito service.CreditoService) *ClientesHandler {
	return &ClientesHandler{svc: svc, credito: credito}
}

// Crear godoc
// @Summary Crea un cliente, opcionalmente con límite de crédito
// @Tags clientes
// @Accept json
// @Produce json
// @Param body body dto.CrearClienteRequest true "Cliente"
// @Success 201 {object} dto.ClienteResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("activo") != "all"
	resp, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Desactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientesHandler) Reactivar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Abonar godoc
// @Summary Registra un abono al saldo de crédito del cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param id path string true "ID de cliente"
// @Param body body dto.AbonoRequest true "Monto del abono"
// @Success 200 {object} dto.ClienteResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/clientes/{id}/abonos [post]
func (h *ClientesHandler) Abonar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.credito.Abonar(c.Request.Context(), id, req.Monto)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
