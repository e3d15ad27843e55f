package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// platePattern accepts both the legacy ABC1234 and the Mercosul ABC1D23 plates.
var platePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

var (
	structOnce sync.Once
	structV    *validator.Validate
)

func structValidator() *validator.Validate {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "cpf", func(fl validator.FieldLevel) bool {
			return ValidateCPF(fl.Field().String())
		})
		mustRegister(v, "rg", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return len(s) == rgLen && NormalizeRG(s) == s
		})
		mustRegister(v, "cnh", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return len(s) == cnhLen && Digits(s) == s
		})
		mustRegister(v, "plate", func(fl validator.FieldLevel) bool {
			return platePattern.MatchString(strings.ToUpper(fl.Field().String()))
		})
		structV = v
	})
	return structV
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// Struct validates s against its `validate` tags and returns one message per
// failing field keyed by the field's JSON name. It returns nil when s is valid.
func Struct(s any) map[string]string {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = tagMessage(fe)
		}
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required."
	case "cpf":
		return f + " is invalid."
	case "rg":
		return f + " must contain 9 characters."
	case "cnh":
		return f + " must contain 11 digits."
	case "plate":
		return f + " is not a valid plate."
	case "email":
		return f + " must be a valid email."
	case "min", "gte":
		return f + " must be at least " + fe.Param() + "."
	case "max", "lte":
		return f + " must be at most " + fe.Param() + "."
	default:
		return f + " is invalid."
	}
}
