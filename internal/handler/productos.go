package handler

import (
	"net/http"

	"napos/internal/apierror"
	"napos/internal/dto"
	"napos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductosHandler serves catalog CRUD plus the price operations, which
// delegate to PrecioService so every price change is audited.
type ProductosHandler struct {
	svc    service.ProductoService
	precio service.PrecioService
}

func NewProductosHandler(svc service.ProductoService, precio service.PrecioService) *ProductosHandler {
	return &ProductosHandler{svc: svc, precio: precio}
}

// Crear godoc
// @Summary Crea un producto
// @Tags productos
// @Accept json
// @Produce json
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
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

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
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

// Listar godoc
// @Summary Lista productos con filtros de catálogo
// @Tags productos
// @Produce json
// @Param nombre query string false "Búsqueda parcial por nombre"
// @Param barcode query string false "Código de barras exacto"
// @Param proveedor_id query string false "UUID del proveedor principal"
// @Param activo query string false "false | all (default: solo activos)"
// @Success 200 {object} dto.ProductoListResponse
// @Router /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Desactivar(c *gin.Context) {
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

func (h *ProductosHandler) Reactivar(c *gin.Context) {
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

// Historial godoc
// @Summary Historial de cambios de precio de un producto
// @Tags productos
// @Produce json
// @Param id path string true "ID de producto"
// @Success 200 {array} dto.HistorialPrecioResponse
// @Router /v1/productos/{id}/historial-precios [get]
func (h *ProductosHandler) Historial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AplicarAjuste godoc
// @Summary Aplica un ajuste de margen propio del producto
// @Tags productos
// @Accept json
// @Produce json
// @Param id path string true "ID de producto"
// @Param body body dto.AjusteProductoRequest true "Ajuste con signo"
// @Success 200 {object} dto.ProductoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/productos/{id}/ajuste [patch]
func (h *ProductosHandler) AplicarAjuste(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AjusteProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.precio.AplicarAjuste(c.Request.Context(), id, req.Ajuste)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCosto godoc
// @Summary Actualiza el costo de compra y repreciación del producto
// @Tags productos
// @Accept json
// @Produce json
// @Param id path string true "ID de producto"
// @Param body body dto.ActualizarCostoRequest true "Nuevo costo"
// @Success 200 {object} dto.ProductoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/productos/{id}/costo [patch]
func (h *ProductosHandler) ActualizarCosto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCostoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.precio.ActualizarCosto(c.Request.Context(), id, req.PrecioCompra)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarProveedor godoc
// @Summary Cambia el proveedor principal (resetea el ajuste y reprecia)
// @Tags productos
// @Accept json
// @Produce json
// @Param id path string true "ID de producto"
// @Param body body dto.CambiarProveedorRequest true "Nuevo proveedor"
// @Success 200 {object} dto.ProductoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/productos/{id}/proveedor [patch]
func (h *ProductosHandler) CambiarProveedor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CambiarProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("recurso no encontrado"))
		return
	}
	resp, err := h.precio.CambiarProveedor(c.Request.Context(), id, proveedorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
