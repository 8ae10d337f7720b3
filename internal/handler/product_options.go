package handler

import (
	"net/http"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductOptionsHandler struct{ svc service.ProductOptionService }

func NewProductOptionsHandler(svc service.ProductOptionService) *ProductOptionsHandler {
	return &ProductOptionsHandler{svc: svc}
}

// ListActive godoc
// @Summary      Opciones activas del formulario
// @Description  Opciones activas agrupadas por categoria, ordenadas por order_index.
// @Tags         opciones
// @Produce      json
// @Success      200  {object} dto.ProductOptionsByCategory
// @Router       /api/product-options [get]
func (h *ProductOptionsHandler) ListActive(c *gin.Context) {
	resp, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAll godoc
// @Summary      Listar todas las opciones
// @Tags         admin-opciones
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Filtrar por categoria"
// @Success      200  {array}  dto.ProductOptionResponse
// @Router       /api/admin/product-options [get]
func (h *ProductOptionsHandler) ListAll(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Crear una opcion
// @Tags         admin-opciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.CreateProductOptionRequest true "Opcion"
// @Success      201  {object} dto.ProductOptionResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /api/admin/product-options [post]
func (h *ProductOptionsHandler) Create(c *gin.Context) {
	var req dto.CreateProductOptionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	audit(c, "product_option.create", resp.ID)
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Modificar una opcion
// @Tags         admin-opciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string                         true "UUID de la opcion"
// @Param        body body     dto.UpdateProductOptionRequest true "Campos a modificar"
// @Success      200  {object} dto.ProductOptionResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /api/admin/product-options/{id} [put]
func (h *ProductOptionsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductOptionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Opcion no encontrada")
		return
	}
	audit(c, "product_option.update", id.String())
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Eliminar una opcion
// @Tags         admin-opciones
// @Security     BearerAuth
// @Param        id   path     string true "UUID de la opcion"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /api/admin/product-options/{id} [delete]
func (h *ProductOptionsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Opcion no encontrada")
		return
	}
	audit(c, "product_option.delete", id.String())
	c.Status(http.StatusNoContent)
}
