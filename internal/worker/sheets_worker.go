package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SheetsSyncPayload is the job body pushed to QueueSheets.
type SheetsSyncPayload struct {
	OrderID string `json:"order_id"`
}

// OrderSyncer appends one stored order to the spreadsheet.
type OrderSyncer interface {
	SyncOrder(ctx context.Context, id uuid.UUID) error
}

var errEmptyOrderID = errors.New("empty order_id")

// NewSheetsSyncHandler decodes a sheets_sync job and runs the append.
func NewSheetsSyncHandler(syncer OrderSyncer) Handler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var p SheetsSyncPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
		if p.OrderID == "" {
			return errEmptyOrderID
		}
		id, err := uuid.Parse(p.OrderID)
		if err != nil {
			return fmt.Errorf("invalid order_id %q: %w", p.OrderID, err)
		}
		return syncer.SyncOrder(ctx, id)
	}
}
