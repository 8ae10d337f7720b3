package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// SheetsEnqueuer pushes a spreadsheet sync job (worker.Dispatcher).
type SheetsEnqueuer interface {
	EnqueueSheetsSync(ctx context.Context, orderID string) error
}

// OrderCreatedPayload accepts both the plain shape and the database change
// event shape.
type OrderCreatedPayload struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
	Record  *struct {
		ID string `json:"id"`
	} `json:"record"`
}

func (p OrderCreatedPayload) id() string {
	if p.OrderID != "" {
		return p.OrderID
	}
	if p.Record != nil {
		return p.Record.ID
	}
	return ""
}

type WebhookHandler struct {
	secret string
	queue  SheetsEnqueuer // nil runs the sync inline
	sync   service.IntegrationService
}

func NewWebhookHandler(secret string, queue SheetsEnqueuer, sync service.IntegrationService) *WebhookHandler {
	return &WebhookHandler{secret: secret, queue: queue, sync: sync}
}

// OrderCreated godoc
// @Summary      Webhook de pedido creado
// @Description  Agrega el pedido a la planilla. Con Redis encola el trabajo (202); sin Redis lo ejecuta en linea (200).
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret header string              true "Secreto compartido"
// @Param        body             body   OrderCreatedPayload true "order_id o evento INSERT"
// @Success      200  {object} map[string]interface{}
// @Success      202  {object} map[string]interface{}
// @Failure      401  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /api/webhooks/order-created [post]
func (h *WebhookHandler) OrderCreated(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusNotFound, apierror.New("No encontrado"))
		return
	}
	if subtle.ConstantTimeCompare([]byte(c.GetHeader(WebhookSecretHeader)), []byte(h.secret)) != 1 {
		c.JSON(http.StatusUnauthorized, apierror.New("Secreto invalido"))
		return
	}

	var p OrderCreatedPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
		return
	}
	if p.Type != "" && p.Type != "INSERT" {
		c.JSON(http.StatusOK, gin.H{"ignored": true, "type": p.Type})
		return
	}
	id, err := uuid.Parse(p.id())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("order_id invalido"))
		return
	}

	if h.queue != nil {
		if err := h.queue.EnqueueSheetsSync(c.Request.Context(), id.String()); err != nil {
			respondError(c, err, "")
			return
		}
		log.Info().Str("order_id", id.String()).Msg("webhook: sheets sync enqueued")
		c.JSON(http.StatusAccepted, gin.H{"queued": true, "order_id": id.String()})
		return
	}

	if err := h.sync.SyncOrder(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Str("order_id", id.String()).Str("branch", "sheets_append").Msg("webhook: sheets sync failed")
		respondError(c, err, "Pedido no encontrado")
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": true, "order_id": id.String()})
}
