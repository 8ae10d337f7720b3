package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 365
)

// ExportFile is a rendered export ready to be served as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService aggregates statistics and renders exports. Aggregation runs
// in Go over rows fetched once.
type ReportService interface {
	Stats(ctx context.Context, days int) (*dto.StatsResponse, error)
	Export(ctx context.Context, f dto.ExportFilter) (*ExportFile, error)
}

type reportService struct {
	repo repository.OrderRepository
	now  func() time.Time
}

func NewReportService(repo repository.OrderRepository) ReportService {
	return &reportService{repo: repo, now: time.Now}
}

func (s *reportService) Stats(ctx context.Context, days int) (*dto.StatsResponse, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	if days > MaxStatsDays {
		days = MaxStatsDays
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(days - 1))

	orders, err := s.repo.ListWithProducts(ctx, repository.OrderQuery{From: &from})
	if err != nil {
		return nil, err
	}
	return aggregate(orders, from, days), nil
}

func aggregate(orders []model.CustomerRequest, from time.Time, days int) *dto.StatsResponse {
	resp := &dto.StatsResponse{
		Total:      len(orders),
		WindowDays: days,
		ByStatus:   make(map[string]int, len(model.Statuses)),
		ByDay:      make([]dto.DayCount, days),
	}
	for _, st := range model.Statuses {
		resp.ByStatus[st] = 0
	}
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i).Format(dateLayout)
		resp.ByDay[i] = dto.DayCount{Date: d}
		index[d] = i
	}

	types := map[string]int{}
	for _, o := range orders {
		resp.ByStatus[o.Status]++
		if i, ok := index[o.CreatedAt.UTC().Format(dateLayout)]; ok {
			resp.ByDay[i].Count++
		}
		for _, p := range o.Products {
			types[p.ProductType]++
			resp.TotalProducts++
		}
	}

	resp.ByProductType = make([]dto.ProductTypeStat, 0, len(types))
	total := decimal.NewFromInt(int64(resp.TotalProducts))
	for name, n := range types {
		pct := decimal.NewFromInt(int64(n)).Mul(decimal.NewFromInt(100)).Div(total).Round(1)
		resp.ByProductType = append(resp.ByProductType, dto.ProductTypeStat{ProductType: name, Count: n, Percentage: pct})
	}
	sort.Slice(resp.ByProductType, func(i, j int) bool {
		a, b := resp.ByProductType[i], resp.ByProductType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ProductType < b.ProductType
	})
	return resp
}

// CSVHeader is the fixed first row of the CSV export.
var CSVHeader = []string{
	"ID", "Fecha", "Estado", "Nombre", "Apellido", "Email", "Telefono", "Observaciones", "Productos", "Tipos de producto",
}

func (s *reportService) Export(ctx context.Context, f dto.ExportFilter) (*ExportFile, error) {
	from, to, err := parseDateRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListWithProducts(ctx, repository.OrderQuery{Status: f.Status, From: from, To: to})
	if err != nil {
		return nil, err
	}
	stamp := s.now().UTC().Format("20060102_150405")

	if f.Format == "json" {
		out := make([]dto.OrderResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, mapOrder(o))
		}
		body, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: "pedidos_" + stamp + ".json", ContentType: "application/json", Body: body}, nil
	}
	return &ExportFile{Filename: "pedidos_" + stamp + ".csv", ContentType: "text/csv; charset=utf-8", Body: renderCSV(orders)}, nil
}

// quote wraps v in double quotes and doubles any embedded quote.
func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quote(f))
	}
	buf.WriteString("\r\n")
}

// renderCSV writes one row per order with every field quoted.
func renderCSV(orders []model.CustomerRequest) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf, CSVHeader)
	for _, o := range orders {
		types := make([]string, 0, len(o.Products))
		for _, p := range o.Products {
			types = append(types, p.ProductType)
		}
		writeCSVRow(&buf, []string{
			o.ID.String(),
			o.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			o.Status,
			o.Name,
			o.Lastname,
			o.Email,
			o.PhoneOrEmpty(),
			o.NotesOrEmpty(),
			strconv.Itoa(len(o.Products)),
			strings.Join(types, " | "),
		})
	}
	return buf.Bytes()
}
