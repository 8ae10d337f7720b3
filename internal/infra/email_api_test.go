package infra

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailAPIClient_Send(t *testing.T) {
	var got emailAPIPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	c := NewEmailAPIClient(srv.URL, "key-123", "pedidos@example.com")
	err := c.Send(context.Background(), EmailMessage{
		To:          []string{"ana@x.com"},
		Subject:     "Pedido recibido",
		HTML:        "<p>Hola</p>",
		Attachments: []EmailAttachment{{Filename: "pedido.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "pedidos@example.com", got.From)
	assert.Equal(t, []string{"ana@x.com"}, got.To)
	assert.Equal(t, "<p>Hola</p>", got.HTML)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF")), got.Attachments[0].Content)
	assert.Equal(t, "application/pdf", got.Attachments[0].ContentType)
}

func TestEmailAPIClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	err := NewEmailAPIClient(srv.URL, "k", "x@example.com").Send(context.Background(), EmailMessage{To: []string{"a@x.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from")
}
