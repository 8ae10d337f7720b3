package handler

import (
	"net/http"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the form configuration and the colour mapping. The
// public and admin GETs return the same merged view.
type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetFormConfig godoc
// @Summary      Configuracion del formulario
// @Description  Valores por defecto combinados campo a campo con lo guardado.
// @Tags         configuracion
// @Produce      json
// @Success      200  {object} dto.FormConfig
// @Router       /api/form-config [get]
func (h *SettingsHandler) GetFormConfig(c *gin.Context) {
	cfg, err := h.svc.GetFormConfig(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SaveFormConfig godoc
// @Summary      Guardar la configuracion del formulario
// @Tags         admin-configuracion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.FormConfig true "Campos"
// @Success      200  {object} dto.FormConfig
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/form-config [put]
func (h *SettingsHandler) SaveFormConfig(c *gin.Context) {
	var req dto.FormConfig
	if err := c.ShouldBindJSON(&req); err != nil || req == nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
		return
	}
	cfg, err := h.svc.SaveFormConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	audit(c, "settings.save", "form_config")
	c.JSON(http.StatusOK, cfg)
}

// GetProductColors godoc
// @Summary      Colores por tipo de producto
// @Tags         configuracion
// @Produce      json
// @Success      200  {object} dto.ProductColors
// @Router       /api/products-colors [get]
func (h *SettingsHandler) GetProductColors(c *gin.Context) {
	colors, err := h.svc.GetProductColors(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, colors)
}

// SaveProductColors godoc
// @Summary      Guardar los colores por tipo de producto
// @Tags         admin-configuracion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.ProductColors true "Tipo de producto → colores"
// @Success      200  {object} dto.ProductColors
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/products-colors [put]
func (h *SettingsHandler) SaveProductColors(c *gin.Context) {
	var req dto.ProductColors
	if err := c.ShouldBindJSON(&req); err != nil || req == nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
		return
	}
	colors, err := h.svc.SaveProductColors(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	audit(c, "settings.save", "products_colors")
	c.JSON(http.StatusOK, colors)
}
