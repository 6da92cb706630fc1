package handler

import (
	"net/http"

	"napos/internal/dto"
	"napos/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra una compra a proveedor (suma stock y repreciación)
// @Tags compras
// @Accept json
// @Produce json
// @Param body body dto.RegistrarCompraRequest true "Compra"
// @Success 201 {object} dto.CompraResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCompra(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary Obtiene una compra con sus detalles
// @Tags compras
// @Produce json
// @Param id path string true "ID de compra"
// @Success 200 {object} dto.CompraResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/compras/{id} [get]
func (h *ComprasHandler) Obtener(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCompra(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista compras, opcionalmente por proveedor
// @Tags compras
// @Produce json
// @Param proveedor_id query string false "UUID del proveedor"
// @Success 200 {object} dto.CompraListResponse
// @Router /v1/compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
	var filter dto.CompraFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListCompras(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
