package intake

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/landing-generator/internal/catalog"
	"github.com/jonathan/landing-generator/internal/types"
)

// User-facing messages, in the order the checks run.
const (
	MsgTipoLanding    = "Por favor, seleccioná el tipo de landing"
	MsgSecciones      = "Por favor, seleccioná al menos una sección para generar"
	MsgNombreProducto = "Por favor, ingresá el nombre del producto o agrupador"
	MsgInstruccion    = "Por favor, escribí una instrucción para regenerar la sección"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs the presence checks on a generation request.
// Returns *types.ErrValidation for the first failing field.
func Validate(req types.GenerationRequest) error {
	if err := validate.Struct(req); err != nil {
		return extractValidationError(err)
	}

	if _, ok := types.ParseLandingType(string(req.TipoLanding)); !ok {
		return &types.ErrValidation{Field: FieldTipoLanding, Message: MsgTipoLanding}
	}

	cat, err := catalog.Get(req.TipoLanding)
	if err != nil {
		return &types.ErrValidation{Field: FieldTipoLanding, Message: MsgTipoLanding}
	}
	for _, key := range req.SeccionesSolicitadas {
		if !cat.Has(key) {
			return &types.ErrValidation{
				Field:   FieldSecciones,
				Message: fmt.Sprintf("La sección %q no existe para una landing de tipo %s", key, req.TipoLanding.Label()),
			}
		}
	}
	return nil
}

// ValidateInstruction checks a regeneration instruction and returns it trimmed.
func ValidateInstruction(instruction string) (string, error) {
	in := types.RegenerateInput{Instruccion: strings.TrimSpace(instruction)}
	if err := validate.Struct(in); err != nil {
		return "", &types.ErrValidation{Field: "instruccion", Message: MsgInstruccion}
	}
	return in.Instruccion, nil
}

// extractValidationError maps the first validator error to a user-facing message.
func extractValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &types.ErrValidation{Field: "request", Message: "invalid request"}
	}

	fe := validationErrors[0]
	switch {
	case fe.Field() == FieldTipoLanding:
		return &types.ErrValidation{Field: FieldTipoLanding, Message: MsgTipoLanding}
	case strings.HasPrefix(fe.Field(), "secciones_solicitadas"):
		return &types.ErrValidation{Field: FieldSecciones, Message: MsgSecciones}
	case fe.Field() == FieldNombreProducto:
		return &types.ErrValidation{Field: FieldNombreProducto, Message: MsgNombreProducto}
	default:
		return &types.ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
}
