// Package validation holds the single go-playground validator instance shared
// by entity constructors and the HTTP binding layer.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var permissionPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*:[a-z][a-z0-9_-]*$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator, building it on first use.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
			return IsPermissionName(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// IsPermissionName reports whether s follows the resource:action convention.
func IsPermissionName(s string) bool {
	return permissionPattern.MatchString(s)
}

// Struct validates s and flattens any field errors into one readable message.
// A nil return means s is valid.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "permission":
		return field + " must follow the resource:action format"
	case "dive":
		return field + " contains an invalid item"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
