package utils

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Custom validation tags
const (
	TagAuthID = "authid"
	TagIDList = "idlist"
)

// RegisterValidations adds the authorization id tags to v
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagAuthID, validateAuthID); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", TagAuthID, err)
	}
	if err := v.RegisterValidation(TagIDList, validateIDList); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", TagIDList, err)
	}
	return nil
}

// validateAuthID accepts positive integer ids
func validateAuthID(fl validator.FieldLevel) bool {
	return isPositiveInt(fl.Field())
}

// validateIDList accepts a non-empty slice of positive integer ids
func validateIDList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Len() == 0 {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if !isPositiveInt(field.Index(i)) {
			return false
		}
	}
	return true
}

func isPositiveInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() > 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() > 0
	}
	return false
}

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
