package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their configuration names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("colorname", func(fl validator.FieldLevel) bool {
			_, ok := canonicalColorName(fl.Field().String())
			return ok
		}); err != nil {
			panic(err)
		}

		validate = v
	})
	return validate
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return "invalid configuration:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// Validate checks cfg against the configuration schema.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Problems: []string{"configuration is empty"}}
	}

	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating configuration: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems}
}

// describe turns a validator error into a message using configuration paths,
// such as "restaurants[1].id".
func describe(fe validator.FieldError) string {
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	case "len":
		return fmt.Sprintf("%s must have exactly %s components", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not repeat %s", field, strings.ToLower(fe.Param()))
	case "colorname":
		msg := fmt.Sprintf("%s: unknown color %q", field, fe.Value())
		if s := suggestColor(fmt.Sprint(fe.Value())); s != "" {
			msg += fmt.Sprintf(", did you mean %q?", s)
		}
		return msg
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
