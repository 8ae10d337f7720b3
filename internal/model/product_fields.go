package model

// ProductField is one labelled value of a product, in form order.
type ProductField struct {
	Key   string
	Label string
	Value string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Fields lists the product configuration in the order the form shows it.
// Unset optional values are returned as "".
func (p ProductRequest) Fields() []ProductField {
	return []ProductField{
		{"patient_name", "Paciente", p.PatientName},
		{"patient_lastname", "Apellido del paciente", p.PatientLastname},
		{"product_type", "Tipo de producto", p.ProductType},
		{"forefoot", "Antepié", p.Forefoot},
		{"anterior_wedge", "Cuña anterior", p.AnteriorWedge},
		{"anterior_wedge_mm", "Cuña anterior (mm)", deref(p.AnteriorWedgeMM)},
		{"midfoot_arch", "Arco mediopié", p.MidfootArch},
		{"midfoot_external_wedge", "Cuña externa mediopié", p.MidfootExternalWedge},
		{"rearfoot_calcaneus", "Retropié / calcáneo", p.RearfootCalcaneus},
		{"heel_raise_mm", "Realce en talón (mm)", deref(p.HeelRaiseMM)},
		{"posterior_wedge", "Cuña posterior", p.PosteriorWedge},
		{"posterior_wedge_mm", "Cuña posterior (mm)", deref(p.PosteriorWedgeMM)},
		{"template_color", "Color de plantilla", p.TemplateColor},
		{"template_size", "Talle de plantilla", p.TemplateSize},
	}
}

// PhoneOrEmpty and NotesOrEmpty flatten the optional customer columns.
func (c CustomerRequest) PhoneOrEmpty() string { return deref(c.Phone) }
func (c CustomerRequest) NotesOrEmpty() string { return deref(c.Notes) }
