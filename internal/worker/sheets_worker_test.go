package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSyncer struct {
	ids []uuid.UUID
	err error
}

func (s *stubSyncer) SyncOrder(_ context.Context, id uuid.UUID) error {
	s.ids = append(s.ids, id)
	return s.err
}

func TestSheetsSyncHandler(t *testing.T) {
	s := &stubSyncer{}
	h := NewSheetsSyncHandler(s)
	id := uuid.New()

	raw, err := json.Marshal(SheetsSyncPayload{OrderID: id.String()})
	require.NoError(t, err)
	require.NoError(t, h(context.Background(), raw))
	assert.Equal(t, []uuid.UUID{id}, s.ids)
}

func TestSheetsSyncHandler_BadPayloads(t *testing.T) {
	h := NewSheetsSyncHandler(&stubSyncer{})
	ctx := context.Background()

	assert.Error(t, h(ctx, json.RawMessage(`not json`)))
	assert.ErrorIs(t, h(ctx, json.RawMessage(`{}`)), errEmptyOrderID)
	assert.Error(t, h(ctx, json.RawMessage(`{"order_id":"123"}`)))
}

func TestSheetsSyncHandler_PropagatesSyncError(t *testing.T) {
	boom := errors.New("sheets api 503")
	h := NewSheetsSyncHandler(&stubSyncer{err: boom})
	raw, _ := json.Marshal(SheetsSyncPayload{OrderID: uuid.NewString()})
	assert.ErrorIs(t, h(context.Background(), raw), boom)
}

func TestRunHandler_RecoversPanic(t *testing.T) {
	err := runHandler(context.Background(), func(context.Context, json.RawMessage) error {
		panic("nil map")
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil map")
}
