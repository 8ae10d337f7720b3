package service

import (
	"context"
	"errors"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/notify"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OrderSheetSync appends orders to the spreadsheet (notify.Notifier).
type OrderSheetSync interface {
	SyncSheet(ctx context.Context, orders ...*model.CustomerRequest) error
}

// SheetsProbe is the part of infra.SheetsClient used by the admin checks.
type SheetsProbe interface {
	Title(ctx context.Context) (string, error)
	EnsureTab(ctx context.Context, header []string) (bool, error)
	Tab() string
}

// Probe is one named connectivity check. Returning notify.ErrSkipped marks
// the integration as not configured.
type Probe struct {
	Name string
	Run  func(ctx context.Context) error
}

// IntegrationService drives the spreadsheet outside the submit path and
// reports the state of every external dependency.
type IntegrationService interface {
	// SyncOrder fetches a stored order and appends it to the spreadsheet.
	SyncOrder(ctx context.Context, id uuid.UUID) error
	TestSheets(ctx context.Context) (*dto.SheetsTestResponse, error)
	ExportToSheets(ctx context.Context, f dto.ExportFilter) (*dto.SheetsExportResponse, error)
	Check(ctx context.Context) dto.IntegrationsResponse
}

type integrationService struct {
	orders repository.OrderRepository
	sync   OrderSheetSync
	sheets SheetsProbe
	probes []Probe
}

// NewIntegrationService takes a nil sheets probe when no spreadsheet is configured.
func NewIntegrationService(orders repository.OrderRepository, sync OrderSheetSync, sheets SheetsProbe, probes ...Probe) IntegrationService {
	return &integrationService{orders: orders, sync: sync, sheets: sheets, probes: probes}
}

func (s *integrationService) syncOrders(ctx context.Context, orders ...*model.CustomerRequest) error {
	err := s.sync.SyncSheet(ctx, orders...)
	if errors.Is(err, notify.ErrSkipped) {
		return ErrSheetsDisabled
	}
	return err
}

func (s *integrationService) SyncOrder(ctx context.Context, id uuid.UUID) error {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if err := s.syncOrders(ctx, o); err != nil {
		return err
	}
	log.Info().Str("order_id", id.String()).Int("products", len(o.Products)).Msg("order synced to spreadsheet")
	return nil
}

func (s *integrationService) TestSheets(ctx context.Context) (*dto.SheetsTestResponse, error) {
	if s.sheets == nil {
		return nil, ErrSheetsDisabled
	}
	created, err := s.sheets.EnsureTab(ctx, notify.SheetHeader)
	if err != nil {
		return nil, err
	}
	title, err := s.sheets.Title(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SheetsTestResponse{Spreadsheet: title, Tab: s.sheets.Tab(), Created: created}, nil
}

func (s *integrationService) ExportToSheets(ctx context.Context, f dto.ExportFilter) (*dto.SheetsExportResponse, error) {
	if s.sheets == nil {
		return nil, ErrSheetsDisabled
	}
	from, to, err := parseDateRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	list, err := s.orders.ListWithProducts(ctx, repository.OrderQuery{Status: f.Status, From: from, To: to})
	if err != nil {
		return nil, err
	}
	resp := &dto.SheetsExportResponse{Orders: len(list)}
	if len(list) == 0 {
		return resp, nil
	}
	ptrs := make([]*model.CustomerRequest, len(list))
	for i := range list {
		ptrs[i] = &list[i]
		resp.Rows += len(notify.SheetRows(ptrs[i]))
	}
	if err := s.syncOrders(ctx, ptrs...); err != nil {
		return nil, err
	}
	return resp, nil
}

// Check runs every probe and reports each one independently.
func (s *integrationService) Check(ctx context.Context) dto.IntegrationsResponse {
	resp := dto.IntegrationsResponse{OK: true, Checks: make([]dto.IntegrationCheck, 0, len(s.probes))}
	for _, p := range s.probes {
		err := p.Run(ctx)
		c := dto.IntegrationCheck{Name: p.Name, OK: err == nil}
		switch {
		case errors.Is(err, notify.ErrSkipped):
			c.OK, c.Skipped, c.Detail = true, true, "no configurado"
		case err != nil:
			c.Detail = err.Error()
			resp.OK = false
		}
		resp.Checks = append(resp.Checks, c)
	}
	return resp
}
