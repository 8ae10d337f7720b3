package handler

import (
	"net/http"
	"strconv"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler { return &ReportsHandler{svc: svc} }

// Stats godoc
// @Summary      Estadisticas de pedidos
// @Description  Totales, conteo por estado, por dia y por tipo de producto sobre una ventana de dias.
// @Tags         admin-reportes
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Dias de la ventana (1-365)" default(30)
// @Success      200  {object} dto.StatsResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/stats [get]
func (h *ReportsHandler) Stats(c *gin.Context) {
	days := service.DefaultStatsDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("days debe ser un entero positivo"))
			return
		}
		days = n
	}
	resp, err := h.svc.Stats(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary      Exportar pedidos
// @Description  CSV (todos los campos entre comillas) o JSON con productos.
// @Tags         admin-reportes
// @Produce      text/csv
// @Produce      json
// @Security     BearerAuth
// @Param        format query string false "csv | json" default(csv)
// @Param        status query string false "Estado"
// @Param        from   query string false "YYYY-MM-DD (inclusive)"
// @Param        to     query string false "YYYY-MM-DD (inclusive)"
// @Success      200  {file}   binary
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/export [get]
func (h *ReportsHandler) Export(c *gin.Context) {
	var f dto.ExportFilter
	if !bindQuery(c, &f) {
		return
	}
	file, err := h.svc.Export(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
