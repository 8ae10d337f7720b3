package infra

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheetsAPI answers the handful of Sheets v4 calls the client makes and
// records their bodies.
type fakeSheetsAPI struct {
	mu           sync.Mutex
	tabs         []string
	headerSet    bool
	batchBodies  []string
	appended     []string
	appendQuery  []string
	bareAddSheet bool
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		f.batchBodies = append(f.batchBodies, string(body))
		if strings.Contains(string(body), "addSheet") {
			f.tabs = append(f.tabs, "Pedidos")
			if f.bareAddSheet {
				_, _ = w.Write([]byte(`{"replies":[{"addSheet":{}}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"replies":[{"addSheet":{"properties":{"sheetId":42,"title":"Pedidos"}}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		f.appended = append(f.appended, string(body))
		f.appendQuery = append(f.appendQuery, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		f.headerSet = true
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		if f.headerSet {
			_, _ = w.Write([]byte(`{"values":[["Fecha"]]}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodGet:
		sheetsJSON := make([]map[string]any, 0, len(f.tabs))
		for i, t := range f.tabs {
			sheetsJSON = append(sheetsJSON, map[string]any{"properties": map[string]any{"sheetId": i + 1, "title": t}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"properties": map[string]any{"title": "Pedidos 2026"},
			"sheets":     sheetsJSON,
		})
	default:
		http.NotFound(w, r)
	}
}

func newFakeSheetsClient(t *testing.T, api *fakeSheetsAPI) *SheetsClient {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c, err := newSheetsClientWithHTTP(context.Background(), srv.Client(), srv.URL+"/", "sheet-id", "Pedidos", nil)
	require.NoError(t, err)
	return c
}

func TestSheetsClient_EnsureTabCreatesAndStylesOnce(t *testing.T) {
	api := &fakeSheetsAPI{tabs: []string{"Hoja 1"}}
	c := newFakeSheetsClient(t, api)
	ctx := context.Background()

	created, err := c.EnsureTab(ctx, []string{"Fecha", "Pedido"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, api.headerSet)
	require.Len(t, api.batchBodies, 2)
	assert.Contains(t, api.batchBodies[1], "frozenRowCount")
	assert.Contains(t, api.batchBodies[1], `"bold":true`)

	created, err = c.EnsureTab(ctx, []string{"Fecha", "Pedido"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, api.batchBodies, 2)
}

func TestSheetsClient_TitleAndAppend(t *testing.T) {
	api := &fakeSheetsAPI{}
	c := newFakeSheetsClient(t, api)
	ctx := context.Background()

	title, err := c.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pedidos 2026", title)

	require.NoError(t, c.AppendRows(ctx, [][]interface{}{{"2026-03-10", "abc"}, {"2026-03-10", "abc"}}))
	require.Len(t, api.appended, 1)
	assert.Contains(t, api.appended[0], `["2026-03-10","abc"]`)

	require.NoError(t, c.AppendRows(ctx, nil))
	assert.Len(t, api.appended, 1)
}

func TestSheetsClient_A1QuotesTab(t *testing.T) {
	c := &SheetsClient{tab: "Pedidos de O'Brien"}
	assert.Equal(t, "'Pedidos de O''Brien'!A1", c.a1("A1"))
}

func TestSheetsClient_AppendWritesRawValues(t *testing.T) {
	api := &fakeSheetsAPI{}
	c := newFakeSheetsClient(t, api)

	row := []interface{}{"+54 11 5555 1234", `=HYPERLINK("http://x","y")`}
	require.NoError(t, c.AppendRows(context.Background(), [][]interface{}{row}))
	require.Len(t, api.appendQuery, 1)
	assert.Contains(t, api.appendQuery[0], "valueInputOption=RAW")
	assert.NotContains(t, api.appendQuery[0], "USER_ENTERED")
	assert.Contains(t, api.appended[0], "+54 11 5555 1234")
}

func TestSheetsClient_EnsureTabWithoutReplyProperties(t *testing.T) {
	api := &fakeSheetsAPI{tabs: []string{"Hoja 1"}, bareAddSheet: true}
	c := newFakeSheetsClient(t, api)

	created, err := c.EnsureTab(context.Background(), []string{"Fecha"})
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, api.batchBodies, 2)
	// the new tab is the second one listed by the fake, sheetId 2
	assert.Contains(t, api.batchBodies[1], `"sheetId":2`)
}
