// Package validation runs ordered, per-field form rules and collects the
// first failing message of each field.
package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error carries every field message of a rejected form, in field order.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "Errores de validación: " + strings.Join(e.Messages, "; ")
}

// Rule pairs a validator tag with the message reported when it fails.
type Rule struct {
	Tag     string
	Message string
}

type Field struct {
	Value string
	Rules []Rule
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f > 0
	})
	// decimalnum takes plain and exponent forms (".5", "5.", "1e2") but not
	// hex floats, Inf or NaN.
	_ = v.RegisterValidation("decimalnum", func(fl validator.FieldLevel) bool {
		return isDecimal(fl.Field().String())
	})
	// intbetween=<min> <max>
	_ = v.RegisterValidation("intbetween", func(fl validator.FieldLevel) bool {
		bounds := strings.Fields(fl.Param())
		if len(bounds) != 2 {
			return false
		}
		lo, err1 := strconv.Atoi(bounds[0])
		hi, err2 := strconv.Atoi(bounds[1])
		n, err3 := strconv.Atoi(fl.Field().String())
		if err1 != nil || err2 != nil || err3 != nil {
			return false
		}
		return n >= lo && n <= hi
	})
	return v
}

func isDecimal(s string) bool {
	if s == "" || strings.ContainsAny(s, "xX_") {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Check validates each field in order and stops at the first failing rule
// of a field. It returns nil when every field passes.
func Check(fields ...Field) error {
	var msgs []string
	for _, f := range fields {
		for _, r := range f.Rules {
			if err := validate.Var(f.Value, r.Tag); err != nil {
				msgs = append(msgs, r.Message)
				break
			}
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return &Error{Messages: msgs}
}

// Required builds the usual "es obligatorio" rule for a field name.
func Required(field string) Rule {
	return Rule{Tag: "required", Message: "El campo '" + field + "' es obligatorio"}
}
