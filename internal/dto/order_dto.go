package dto

import (
	"strings"
	"time"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateOrderRequest is the public form payload.
type CreateOrderRequest struct {
	Name     string         `json:"name"     validate:"required,min=2,max=100"`
	Lastname string         `json:"lastname" validate:"required,min=2,max=100"`
	Email    string         `json:"email"    validate:"required,email,max=200"`
	Phone    *string        `json:"phone"    validate:"omitempty,max=30,phone"`
	Notes    *string        `json:"notes"    validate:"omitempty,max=2000"`
	Products []ProductInput `json:"products" validate:"required,min=1,max=20,dive"`
}

// ProductInput is one insole configuration. Zone selectors are optional and
// receive sentinel defaults; the *_mm fields are only valid when their parent
// selector holds the unlocking value.
type ProductInput struct {
	PatientName          string  `json:"patient_name"           validate:"required,max=100"`
	PatientLastname      string  `json:"patient_lastname"       validate:"max=100"`
	ProductType          string  `json:"product_type"           validate:"required,max=100"`
	Forefoot             string  `json:"forefoot"               validate:"max=100"`
	AnteriorWedge        string  `json:"anterior_wedge"         validate:"max=100"`
	AnteriorWedgeMM      *string `json:"anterior_wedge_mm"      validate:"omitempty,max=20"`
	MidfootArch          string  `json:"midfoot_arch"           validate:"max=100"`
	MidfootExternalWedge string  `json:"midfoot_external_wedge" validate:"max=100"`
	RearfootCalcaneus    string  `json:"rearfoot_calcaneus"     validate:"max=100"`
	HeelRaiseMM          *string `json:"heel_raise_mm"          validate:"omitempty,max=20"`
	PosteriorWedge       string  `json:"posterior_wedge"        validate:"max=100"`
	PosteriorWedgeMM     *string `json:"posterior_wedge_mm"     validate:"omitempty,max=20"`
	TemplateColor        string  `json:"template_color"         validate:"max=60"`
	TemplateSize         string  `json:"template_size"          validate:"max=20"`
}

// Normalize trims every string so length rules apply to the visible text.
// Blank optional pointers become nil.
func (r *CreateOrderRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Lastname = strings.TrimSpace(r.Lastname)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = trimPtr(r.Phone)
	r.Notes = trimPtr(r.Notes)
	for i := range r.Products {
		p := &r.Products[i]
		p.PatientName = strings.TrimSpace(p.PatientName)
		p.PatientLastname = strings.TrimSpace(p.PatientLastname)
		p.ProductType = strings.TrimSpace(p.ProductType)
		p.Forefoot = strings.TrimSpace(p.Forefoot)
		p.AnteriorWedge = strings.TrimSpace(p.AnteriorWedge)
		p.AnteriorWedgeMM = trimPtr(p.AnteriorWedgeMM)
		p.MidfootArch = strings.TrimSpace(p.MidfootArch)
		p.MidfootExternalWedge = strings.TrimSpace(p.MidfootExternalWedge)
		p.RearfootCalcaneus = strings.TrimSpace(p.RearfootCalcaneus)
		p.HeelRaiseMM = trimPtr(p.HeelRaiseMM)
		p.PosteriorWedge = strings.TrimSpace(p.PosteriorWedge)
		p.PosteriorWedgeMM = trimPtr(p.PosteriorWedgeMM)
		p.TemplateColor = strings.TrimSpace(p.TemplateColor)
		p.TemplateSize = strings.TrimSpace(p.TemplateSize)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// UpdateOrderRequest is the admin PATCH body. Nil fields are left untouched.
type UpdateOrderRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
	Notes  *string `json:"notes"  validate:"omitempty,max=2000"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type OrderFilter struct {
	Status string `form:"status"`
	Search string `form:"search"`
	From   string `form:"from"` // YYYY-MM-DD, inclusive
	To     string `form:"to"`   // YYYY-MM-DD, inclusive
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SubmitOrderResponse struct {
	Success      bool   `json:"success"`
	OrderID      string `json:"orderId"`
	ProductCount int    `json:"productCount"`
	Message      string `json:"message"`
}

type ProductResponse struct {
	ID                   string  `json:"id"`
	PatientName          string  `json:"patient_name"`
	PatientLastname      string  `json:"patient_lastname"`
	ProductType          string  `json:"product_type"`
	Forefoot             string  `json:"forefoot"`
	AnteriorWedge        string  `json:"anterior_wedge"`
	AnteriorWedgeMM      *string `json:"anterior_wedge_mm"`
	MidfootArch          string  `json:"midfoot_arch"`
	MidfootExternalWedge string  `json:"midfoot_external_wedge"`
	RearfootCalcaneus    string  `json:"rearfoot_calcaneus"`
	HeelRaiseMM          *string `json:"heel_raise_mm"`
	PosteriorWedge       string  `json:"posterior_wedge"`
	PosteriorWedgeMM     *string `json:"posterior_wedge_mm"`
	TemplateColor        string  `json:"template_color"`
	TemplateSize         string  `json:"template_size"`
}

type OrderResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Lastname  string            `json:"lastname"`
	Email     string            `json:"email"`
	Phone     *string           `json:"phone"`
	Status    string            `json:"status"`
	Notes     *string           `json:"notes"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Products  []ProductResponse `json:"products"`
}

type OrderListResponse struct {
	Data       []OrderResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
