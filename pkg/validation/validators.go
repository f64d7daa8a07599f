package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"jobkit-backend/pkg/civil"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// No "@": login routes identifiers containing one to the email lookup.
	usernameRegex = regexp.MustCompile(`^[\p{L}0-9.+_-]+$`)
)

// New returns a validator that reports JSON field names and knows the custom tags.
func New() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

// Configure applies the JSON tag naming and custom validators to an existing
// instance, e.g. gin's binding engine.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	v.RegisterCustomTypeFunc(civilDateValue, civil.Date{})
	RegisterValidators(v)
}

// civilDateValue lets required/not_future see a civil.Date as its time.Time.
func civilDateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(civil.Date); ok {
		return d.Time
	}
	return nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("valid_username", ValidUsername)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("not_future", NotFuture)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// ValidUsername accepts letters, digits and @ . + - _ only.
func ValidUsername(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return usernameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// NotFuture rejects time.Time values after today. Zero values pass; pair with required.
func NotFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok || t.IsZero() {
		return true
	}
	return !t.After(time.Now())
}
