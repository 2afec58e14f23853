package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid marks input rejected by Validate.
var ErrInvalid = errors.New("invalid input")

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

var validate = newValidator() //nolint:gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks v against its `validate` tags and reports the first failure
// as a *ValidationError with a human-readable message.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	fe := verrs[0]
	path := fieldPath(fe.Namespace())
	return &ValidationError{Field: path, Message: message(path, fe)}
}

// fieldPath drops the leading struct name: "RegistrationRequest.skills[0].name" -> "skills[0].name".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

var skillPath = regexp.MustCompile(`^skills\[(\d+)\]\.(name|level)$`)

var fieldLabels = map[string]string{ //nolint:gochecknoglobals // static lookup
	"username": "Username",
	"password": "Password",
	"name":     "Full name",
	"position": "Position",
	"skills":   "Skills",
}

func label(path string) string {
	if m := skillPath.FindStringSubmatch(path); m != nil {
		idx, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("Skill %d %s", idx+1, m[2])
	}
	if l, ok := fieldLabels[path]; ok {
		return l
	}
	return path
}

func message(path string, fe validator.FieldError) string {
	l := label(path)
	switch fe.Tag() {
	case "required":
		return l + " is required"
	case "min":
		if path == "skills" {
			return "At least one skill is required"
		}
		return fmt.Sprintf("%s must be at least %s", l, fe.Param())
	case "gte", "lte":
		return l + " must be between 0 and 1"
	default:
		return fmt.Sprintf("%s is invalid (%s)", l, fe.Tag())
	}
}
