package dto

import (
	"bytes"
	"encoding/json"
)

// FieldConfig controls one optional form field. Nil members fall back to the
// default when merged.
type FieldConfig struct {
	Visible *bool   `json:"visible,omitempty"`
	Label   *string `json:"label,omitempty"`
}

// UnmarshalJSON also accepts a bare boolean, the shape older admin builds
// stored ({"phone": false}).
func (f *FieldConfig) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && (data[0] == 't' || data[0] == 'f') {
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = FieldConfig{Visible: &b}
		return nil
	}
	type plain FieldConfig
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FieldConfig(p)
	return nil
}

// FormConfig maps a form field key to its visibility and label.
type FormConfig map[string]FieldConfig

func field(label string) FieldConfig {
	visible := true
	return FieldConfig{Visible: &visible, Label: &label}
}

// DefaultFormConfig lists every optional field of the public form, all visible.
func DefaultFormConfig() FormConfig {
	return FormConfig{
		"phone":                  field("Teléfono"),
		"notes":                  field("Observaciones"),
		"patient_lastname":       field("Apellido del paciente"),
		"forefoot":               field("Antepié"),
		"anterior_wedge":         field("Cuña anterior"),
		"midfoot_arch":           field("Arco mediopié"),
		"midfoot_external_wedge": field("Cuña externa mediopié"),
		"rearfoot_calcaneus":     field("Retropié / calcáneo"),
		"posterior_wedge":        field("Cuña posterior"),
		"template_color":         field("Color de plantilla"),
		"template_size":          field("Talle de plantilla"),
	}
}

// Merge overlays stored on top of c field by field. Keys only present in
// stored are kept; members left nil in stored keep the value from c.
func (c FormConfig) Merge(stored FormConfig) FormConfig {
	out := make(FormConfig, len(c)+len(stored))
	for k, v := range c {
		out[k] = v
	}
	for k, s := range stored {
		base, ok := out[k]
		if !ok {
			visible := true
			base = FieldConfig{Visible: &visible}
		}
		if s.Visible != nil {
			base.Visible = s.Visible
		}
		if s.Label != nil {
			base.Label = s.Label
		}
		out[k] = base
	}
	return out
}

// ProductColors maps a product type to the template colours it can be ordered in.
type ProductColors map[string][]string

var (
	DefaultProductTypes = []string{"Every Day", "Deportiva", "Confort", "Kids"}
	DefaultColors       = []string{"Negro", "Azul", "Gris", "Beige"}
)

// DefaultProductColors maps every default product type to the default colours.
func DefaultProductColors() ProductColors {
	out := make(ProductColors, len(DefaultProductTypes))
	for _, pt := range DefaultProductTypes {
		out[pt] = append([]string(nil), DefaultColors...)
	}
	return out
}
