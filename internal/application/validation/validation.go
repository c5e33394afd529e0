// Package validation valida los DTOs de entrada con sus tags `validate` (go-playground/validator)
// y traduce cada fallo a un domain.FieldError con el nombre JSON del campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/leads-crm-api/internal/domain"
)

// validate es seguro para uso concurrente y cachea la metadata de cada struct.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// required acepta un puntero no nil a ""; las actualizaciones parciales usan nonblank.
	v.RegisterAlias("nonblank", "min=1")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct valida s y agrega a v un error por cada campo que no cumple sus reglas.
func Struct(v *domain.ValidationError, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		v.Add("body", err.Error())
		return
	}
	for _, fe := range verrs {
		v.Add(fieldPath(fe), message(fe))
	}
}

// fieldPath quita el nombre del struct raíz: "CreateLeadRequest.call_schedule[0].date" → "call_schedule[0].date".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid identifier"
	}
	return "failed on " + fe.Tag()
}
