package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Sentinel errors translated to HTTP status codes by the handlers.
var (
	ErrNotFound        = errors.New("no encontrado")
	ErrCreateOrder     = errors.New("No se pudo crear el pedido")
	ErrInvalidSetting  = errors.New("configuracion invalida")
	ErrInvalidDate     = errors.New("fecha invalida, use YYYY-MM-DD")
	ErrSheetsDisabled  = errors.New("Google Sheets no esta configurado")
	ErrDuplicateOption = errors.New("ya existe una opcion con ese valor en la categoria")
)

const dateLayout = "2006-01-02"

// parseDateRange turns inclusive YYYY-MM-DD bounds into [from, to+1d) in UTC.
// Empty strings leave the bound open.
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if from != "" {
		v, err := time.ParseInLocation(dateLayout, from, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidDate, from)
		}
		f = &v
	}
	if to != "" {
		v, err := time.ParseInLocation(dateLayout, to, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidDate, to)
		}
		v = v.AddDate(0, 0, 1)
		t = &v
	}
	return f, t, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
