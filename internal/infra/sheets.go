package infra

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient appends order rows to one tab of a spreadsheet using a
// service account. Every API call goes through the breaker.
type SheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	tab           string
	breaker       *Breaker
}

// NewSheetsClient authenticates with the service-account JSON from cfg
// (inline, or read from GOOGLE_SERVICE_ACCOUNT_FILE).
func NewSheetsClient(ctx context.Context, cfg *config.Config, breaker *Breaker) (*SheetsClient, error) {
	creds := []byte(cfg.ServiceAccountJSON)
	if len(creds) == 0 {
		b, err := os.ReadFile(cfg.ServiceAccountJSONFile)
		if err != nil {
			return nil, fmt.Errorf("sheets: read service account file: %w", err)
		}
		creds = b
	}
	jwtCfg, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse service account: %w", err)
	}
	return newSheetsClientWithHTTP(ctx, jwtCfg.Client(ctx), "", cfg.SheetsID, cfg.SheetsTab, breaker)
}

func newSheetsClientWithHTTP(ctx context.Context, hc *http.Client, endpoint, spreadsheetID, tab string, breaker *Breaker) (*SheetsClient, error) {
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	if breaker == nil {
		breaker = NewBreaker("sheets", 5, 0)
	}
	return &SheetsClient{svc: svc, spreadsheetID: spreadsheetID, tab: tab, breaker: breaker}, nil
}

func (c *SheetsClient) Tab() string { return c.tab }

// a1 quotes the tab name for A1 notation: Pedidos → 'Pedidos'!A1.
func (c *SheetsClient) a1(cells string) string {
	return "'" + strings.ReplaceAll(c.tab, "'", "''") + "'!" + cells
}

// Title returns the spreadsheet title; it doubles as a reachability check.
func (c *SheetsClient) Title(ctx context.Context) (string, error) {
	var title string
	err := c.breaker.Do(func() error {
		ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("properties.title").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("sheets: get spreadsheet: %w", err)
		}
		title = ss.Properties.Title
		return nil
	})
	return title, err
}

// EnsureTab creates the tab when it is missing and writes the styled header
// when A1 is empty. created reports whether the tab was added.
func (c *SheetsClient) EnsureTab(ctx context.Context, header []string) (created bool, err error) {
	err = c.breaker.Do(func() error {
		sheetID, found, err := c.findSheet(ctx)
		if err != nil {
			return err
		}
		if !found {
			resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
				Requests: []*sheets.Request{{AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: c.tab},
				}}},
			}).Context(ctx).Do()
			if err != nil {
				return fmt.Errorf("sheets: add tab: %w", err)
			}
			if id, ok := addedSheetID(resp); ok {
				sheetID = id
			} else if sheetID, _, err = c.findSheet(ctx); err != nil {
				return err
			}
			created = true
		}

		vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.a1("A1:A1")).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("sheets: read header: %w", err)
		}
		if len(vr.Values) > 0 && len(vr.Values[0]) > 0 {
			return nil
		}
		return c.writeHeader(ctx, sheetID, header)
	})
	return created, err
}

func addedSheetID(resp *sheets.BatchUpdateSpreadsheetResponse) (int64, bool) {
	if resp == nil || len(resp.Replies) == 0 {
		return 0, false
	}
	add := resp.Replies[0].AddSheet
	if add == nil || add.Properties == nil {
		return 0, false
	}
	return add.Properties.SheetId, true
}

func (c *SheetsClient) findSheet(ctx context.Context) (int64, bool, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, false, fmt.Errorf("sheets: list tabs: %w", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == c.tab {
			return s.Properties.SheetId, true, nil
		}
	}
	return 0, false, nil
}

func (c *SheetsClient) writeHeader(ctx context.Context, sheetID int64, header []string) error {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.a1("A1"), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write header: %w", err)
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{SheetId: sheetID, StartRowIndex: 0, EndRowIndex: 1},
				Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9},
					TextFormat:      &sheets.TextFormat{Bold: true},
				}},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			}},
			{UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: style header: %w", err)
	}
	return nil
}

// AppendRows appends rows after the last filled row of the tab. There is no
// dedup key: appending the same order twice writes it twice. Values are
// written RAW so form input starting with = or + stays text.
func (c *SheetsClient) AppendRows(ctx context.Context, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	return c.breaker.Do(func() error {
		_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.a1("A1"), &sheets.ValueRange{Values: rows}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("sheets: append rows: %w", err)
		}
		return nil
	})
}
