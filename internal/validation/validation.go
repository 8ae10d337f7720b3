// Package validation runs go-playground/validator over request DTOs and turns
// the result into an ordered list of field errors keyed by JSON path.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	phoneRe  = regexp.MustCompile(`^[0-9+\-() ]{6,30}$`)
)

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	validate.RegisterStructValidation(productRules, dto.ProductInput{})
}

// productRules rejects a "+mm" value whose parent selector does not hold the
// unlocking value.
func productRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(dto.ProductInput)
	if p.HeelRaiseMM != nil && p.RearfootCalcaneus != model.HeelRaiseOption {
		sl.ReportError(p.HeelRaiseMM, "heel_raise_mm", "HeelRaiseMM", "unlocked_by", "rearfoot_calcaneus")
	}
	if p.AnteriorWedgeMM != nil && (p.AnteriorWedge == "" || p.AnteriorWedge == model.NoneOption) {
		sl.ReportError(p.AnteriorWedgeMM, "anterior_wedge_mm", "AnteriorWedgeMM", "unlocked_by", "anterior_wedge")
	}
	if p.PosteriorWedgeMM != nil && (p.PosteriorWedge == "" || p.PosteriorWedge == model.NoOption) {
		sl.ReportError(p.PosteriorWedgeMM, "posterior_wedge_mm", "PosteriorWedgeMM", "unlocked_by", "posterior_wedge")
	}
}

// Struct validates v and returns nil when every rule passes.
func Struct(v any) []apierror.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apierror.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apierror.FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root struct name: "CreateOrderRequest.products[0].heel_raise_mm"
// becomes "products[0].heel_raise_mm".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required":
		if isList {
			return "debe incluir al menos un elemento"
		}
		return "es obligatorio"
	case "min":
		if isList {
			return fmt.Sprintf("debe incluir al menos %s elemento(s)", fe.Param())
		}
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("no puede incluir mas de %s elementos", fe.Param())
		}
		return fmt.Sprintf("no puede superar %s caracteres", fe.Param())
	case "email":
		return "debe ser un email valido"
	case "phone":
		return "telefono invalido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "unlocked_by":
		return fmt.Sprintf("solo se permite cuando %s tiene el valor que lo habilita", fe.Param())
	default:
		return "valor invalido (" + fe.Tag() + ")"
	}
}

// ApplyDefaults fills empty zone selectors with their sentinel values.
func ApplyDefaults(req *dto.CreateOrderRequest) {
	for i := range req.Products {
		p := &req.Products[i]
		for _, f := range []*string{&p.Forefoot, &p.AnteriorWedge, &p.MidfootArch, &p.MidfootExternalWedge, &p.RearfootCalcaneus} {
			if *f == "" {
				*f = model.NoneOption
			}
		}
		if p.PosteriorWedge == "" {
			p.PosteriorWedge = model.NoOption
		}
	}
}

// Order normalises, validates and defaults a submission in one step.
func Order(req *dto.CreateOrderRequest) []apierror.FieldError {
	req.Normalize()
	if errs := Struct(req); len(errs) > 0 {
		return errs
	}
	ApplyDefaults(req)
	return nil
}
