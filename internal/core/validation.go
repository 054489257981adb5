package core

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError holds one inline message per form field, keyed by the
// field's JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmail.MatchString(fl.Field().String())
	})
	return v
}

// signUpMessages are the inline texts shown on the sign-up form.
var signUpMessages = map[string]map[string]string{
	"firstName":       {"required": "First name is required"},
	"lastName":        {"required": "Last name is required"},
	"email":           {"required": "Email is required", "loose_email": "Please enter a valid email"},
	"password":        {"required": "Password is required", "min": "Password must be at least 8 characters"},
	"confirmPassword": {"eqfield": "Passwords do not match"},
}

// validateForm runs struct validation and converts failures into a
// ValidationError using messages, falling back to a generic text.
func validateForm(form interface{}, messages map[string]map[string]string) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		if msg, ok := messages[name][fe.Tag()]; ok {
			fields[name] = msg
			continue
		}
		fields[name] = name + " is invalid"
	}
	return &ValidationError{Fields: fields}
}
