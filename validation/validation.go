// Package validation reports request field problems as a map of field name
// to violation code.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Violation codes.
const (
	CodeRequired         = "required"
	CodeEmail            = "email"
	CodeMin              = "min"
	CodeGte              = "gte"
	CodeUnknownReference = "unknown_reference"
	CodeInvalid          = "invalid"
	CodeTooLarge         = "too_large"
	CodeUnsupportedType  = "unsupported_type"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Merge copies other into v, keeping existing entries.
func (v Violations) Merge(other Violations) {
	for f, c := range other {
		v.Add(f, c)
	}
}

// MinLength flags value when it is shorter than n bytes.
func MinLength(field, value string, n int, v Violations) {
	if len(value) < n {
		v.Add(field, CodeMin)
	}
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func validate() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		// report fields under their JSON names
		engine.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
		engine.RegisterCustomTypeFunc(func(f reflect.Value) any {
			if d, ok := f.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
	return engine
}

// Struct checks the `validate` tags of s. Whitespace-only strings do not
// satisfy "required".
func Struct(s any) Violations {
	v := Violations{}
	err := validate().Struct(s)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			v.Add("_", CodeInvalid)
			return v
		}
		for _, fe := range fieldErrs {
			v.Add(fe.Field(), fe.Tag())
		}
	}
	blankRequired(reflect.ValueOf(s), v)
	return v
}

func blankRequired(rv reflect.Value, v Violations) {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Type.Kind() != reflect.String || !f.IsExported() {
			continue
		}
		if !strings.HasPrefix(f.Tag.Get("validate"), "required") {
			continue
		}
		if strings.TrimSpace(rv.Field(i).String()) == "" {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" {
				name = f.Name
			}
			v.Add(name, CodeRequired)
		}
	}
}
