package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gaborage/logbricks/record"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

// getValidator returns the shared validator with custom rules registered.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report koanf paths (log.level) instead of Go field names
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
			panic(fmt.Sprintf("config: register loglevel validation: %v", err))
		}

		validate = v
	})
	return validate
}

// Validate checks cfg against its struct tags and returns a *ConfigError for the
// first failing field.
func Validate(cfg *Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return toConfigError(validationErrors[0])
	}
	return err
}

func toConfigError(fe validator.FieldError) *ConfigError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	message := fmt.Sprintf("invalid value %q", fmt.Sprint(fe.Value()))

	switch fe.Tag() {
	case "oneof":
		return NewInvalidFieldError(field, message, strings.Fields(fe.Param()))
	case "loglevel":
		names := make([]string, 0, len(record.Levels()))
		for _, level := range record.Levels() {
			names = append(names, level.Name())
		}
		return NewInvalidFieldError(field, message, names)
	default:
		return NewValidationError(field, fmt.Sprintf("failed %s validation", fe.Tag()))
	}
}

// validateLogLevel accepts anything record.ParseLevel does.
func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := record.ParseLevel(fl.Field().String())
	return err == nil
}
