// Package validation wraps go-playground/validator with field names taken
// from json (or, for config structs, toml) tags and a single readable error
// per failing struct.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(nameOf)
	return v
}

func nameOf(f reflect.StructField) string {
	for _, key := range []string{"json", "toml"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return f.Name
}

// Struct validates s against its validate tags.
// The returned error lists every failing field, e.g. "title is required; genre exceeds 100 characters".
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe, t))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError, t reflect.Type) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s cannot exceed %s", fe.Field(), siblingName(t, fe.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// siblingName reports the display name of the top-level field a cross-field
// rule compares against.
func siblingName(t reflect.Type, field string) string {
	if t.Kind() != reflect.Struct {
		return field
	}
	if f, ok := t.FieldByName(field); ok {
		if name := nameOf(f); name != "" {
			return name
		}
	}
	return field
}
