package handler

import (
	"net/http"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/validation"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Submit godoc
// @Summary      Enviar un pedido
// @Description  Valida el pedido completo, lo guarda y dispara los emails y la planilla. Un error de un efecto secundario no rechaza el pedido.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body body     dto.CreateOrderRequest true "Cliente y productos"
// @Success      200  {object} dto.SubmitOrderResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Failure      500  {object} apierror.APIError
// @Router       /api/orders [post]
func (h *OrdersHandler) Submit(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
		return
	}
	if errs := validation.Order(&req); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(errs))
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         admin-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | processing | completed | cancelled"
// @Param        search query string false "Nombre, apellido o email"
// @Param        from   query string false "YYYY-MM-DD (inclusive)"
// @Param        to     query string false "YYYY-MM-DD (inclusive)"
// @Param        page   query int    false "Pagina" default(1)
// @Param        limit  query int    false "Tamaño de pagina" default(20)
// @Success      200  {object} dto.OrderListResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var f dto.OrderFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Obtener un pedido con sus productos
// @Tags         admin-pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "UUID del pedido"
// @Success      200  {object} dto.OrderResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/admin/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Pedido no encontrado")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Cambiar estado u observaciones
// @Description  Cualquier estado puede pasar a cualquier otro.
// @Tags         admin-pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string                 true "UUID del pedido"
// @Param        body body     dto.UpdateOrderRequest true "Campos a modificar"
// @Success      200  {object} dto.OrderResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /api/admin/orders/{id} [patch]
func (h *OrdersHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Pedido no encontrado")
		return
	}
	audit(c, "order.update", id.String())
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Eliminar un pedido y sus productos
// @Tags         admin-pedidos
// @Security     BearerAuth
// @Param        id   path     string true "UUID del pedido"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /api/admin/orders/{id} [delete]
func (h *OrdersHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Pedido no encontrado")
		return
	}
	audit(c, "order.delete", id.String())
	c.Status(http.StatusNoContent)
}

// PDF godoc
// @Summary      Hoja de pedido en PDF
// @Tags         admin-pedidos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path     string true "UUID del pedido"
// @Success      200  {file}   binary
// @Failure      404  {object} apierror.APIError
// @Router       /api/admin/orders/{id}/pdf [get]
func (h *OrdersHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := h.svc.PDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Pedido no encontrado")
		return
	}
	c.Header("Content-Disposition", `inline; filename="pedido_`+id.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
