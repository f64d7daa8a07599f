package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts validator.ValidationErrors into a map keyed by the JSON
// field name. Validators configured through Configure report JSON names already.
// Errors that are not validation errors land under "non_field_errors".
func FieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"non_field_errors": err.Error()}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		name := fieldName(e)
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = formatSingleError(e)
	}
	return fields
}

// FormatValidationErrors flattens FieldErrors into "field: message" strings.
func FormatValidationErrors(err error) []string {
	fields := FieldErrors(err)
	messages := make([]string, 0, len(fields))
	for name, msg := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", name, msg))
	}
	return messages
}

// fieldName prefers the namespace below the root struct so nested slices read
// as "tags[0]" rather than "JobInput.tags[0]".
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return e.Field()
}

func formatSingleError(e validator.FieldError) string {
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required", "required_with", "required_without":
		return "This field is required."

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Ensure this field has at least %s characters.", param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("Ensure this field has at least %s items.", param)
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("Ensure this field has no more than %s items.", param)
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)

	case "len":
		return fmt.Sprintf("Ensure this field has exactly %s characters.", param)

	case "numeric", "number":
		return "Enter a number."

	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(strings.Fields(param), ", "))

	case "email":
		return "Enter a valid email address."

	case "url":
		return "Enter a valid URL."

	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)

	case "gtefield":
		return fmt.Sprintf("Must not be less than %s.", param)

	case "ltefield":
		return fmt.Sprintf("Must not be greater than %s.", param)

	case "valid_username":
		return "Enter a valid username. This value may contain only letters, numbers, and ./+/-/_ characters."

	case "valid_phone":
		return "Enter a valid phone number (7-15 digits, optional leading +)."

	case "valid_name":
		return "Only letters, digits, spaces and common punctuation are allowed."

	case "no_emoji":
		return "Must not contain emoji or special symbols."

	case "not_future":
		return "Date cannot be in the future."

	default:
		return fmt.Sprintf("Invalid value (%s).", tag)
	}
}
