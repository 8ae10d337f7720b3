package notify

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

const placeholder = "—"

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"orDash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return placeholder
		}
		return s
	},
}).ParseFS(templatesFS, "templates/*.html"))

type Row struct {
	Label string
	Value string
}

type ProductBlock struct {
	Number int
	Rows   []Row
}

// EmailData feeds both templates.
type EmailData struct {
	BusinessName string
	Order        *model.CustomerRequest
	OrderID      string
	CreatedAt    string
	ProductCount int
	Customer     []Row
	Products     []ProductBlock
}

func label(cfg dto.FormConfig, key, fallback string) string {
	if f, ok := cfg[key]; ok && f.Label != nil && *f.Label != "" {
		return *f.Label
	}
	return fallback
}

// NewEmailData lists every field, set or not; labels come from the form
// configuration when it carries one.
func NewEmailData(businessName string, o *model.CustomerRequest, cfg dto.FormConfig) EmailData {
	d := EmailData{
		BusinessName: businessName,
		Order:        o,
		OrderID:      o.ID.String(),
		CreatedAt:    o.CreatedAt.Format("02/01/2006 15:04"),
		ProductCount: len(o.Products),
		Customer: []Row{
			{"Nombre", o.Name},
			{"Apellido", o.Lastname},
			{"Email", o.Email},
			{label(cfg, "phone", "Teléfono"), o.PhoneOrEmpty()},
			{label(cfg, "notes", "Observaciones"), o.NotesOrEmpty()},
		},
	}
	for i, p := range o.Products {
		fields := p.Fields()
		rows := make([]Row, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, Row{label(cfg, f.Key, f.Label), f.Value})
		}
		d.Products = append(d.Products, ProductBlock{Number: i + 1, Rows: rows})
	}
	return d
}

func render(name string, data EmailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
