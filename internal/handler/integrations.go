package handler

import (
	"net/http"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type IntegrationsHandler struct{ svc service.IntegrationService }

func NewIntegrationsHandler(svc service.IntegrationService) *IntegrationsHandler {
	return &IntegrationsHandler{svc: svc}
}

// TestSheets godoc
// @Summary      Probar Google Sheets
// @Description  Crea la pestaña y el encabezado si faltan. No agrega filas.
// @Tags         admin-integraciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.SheetsTestResponse
// @Failure      503  {object} apierror.APIError
// @Router       /api/admin/sheets/test [post]
func (h *IntegrationsHandler) TestSheets(c *gin.Context) {
	resp, err := h.svc.TestSheets(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSheets godoc
// @Summary      Exportar pedidos a Google Sheets
// @Description  Agrega una fila por producto de cada pedido filtrado. No deduplica.
// @Tags         admin-integraciones
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Estado"
// @Param        from   query string false "YYYY-MM-DD (inclusive)"
// @Param        to     query string false "YYYY-MM-DD (inclusive)"
// @Success      200  {object} dto.SheetsExportResponse
// @Failure      503  {object} apierror.APIError
// @Router       /api/admin/sheets/export [post]
func (h *IntegrationsHandler) ExportSheets(c *gin.Context) {
	var f dto.ExportFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.ExportToSheets(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Check godoc
// @Summary      Autodiagnostico de integraciones
// @Description  Base de datos, Redis, email y planilla, cada uno informado por separado.
// @Tags         admin-integraciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.IntegrationsResponse
// @Router       /api/admin/integrations/test [get]
func (h *IntegrationsHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Check(c.Request.Context()))
}
