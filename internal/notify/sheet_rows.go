package notify

import "github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

// SheetHeader is the first row of the orders tab.
var SheetHeader = []string{
	"Fecha", "Pedido", "Estado", "Nombre", "Apellido", "Email", "Teléfono", "Observaciones",
	"Paciente", "Apellido paciente", "Producto", "Antepié", "Cuña anterior", "Cuña anterior mm",
	"Arco mediopié", "Cuña externa mediopié", "Retropié", "Realce talón mm",
	"Cuña posterior", "Cuña posterior mm", "Color", "Talle",
}

// SheetRows returns one row per product with the order columns repeated. An
// order without products still yields one row.
func SheetRows(o *model.CustomerRequest) [][]interface{} {
	head := []interface{}{
		o.CreatedAt.Format("2006-01-02 15:04:05"),
		o.ID.String(),
		o.Status,
		o.Name,
		o.Lastname,
		o.Email,
		o.PhoneOrEmpty(),
		o.NotesOrEmpty(),
	}
	if len(o.Products) == 0 {
		row := append([]interface{}{}, head...)
		for len(row) < len(SheetHeader) {
			row = append(row, "")
		}
		return [][]interface{}{row}
	}

	rows := make([][]interface{}, 0, len(o.Products))
	for _, p := range o.Products {
		row := append([]interface{}{}, head...)
		for _, f := range p.Fields() {
			row = append(row, f.Value)
		}
		rows = append(rows, row)
	}
	return rows
}
