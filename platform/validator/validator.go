// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the application's custom tags
// registered:
//
//	region    two ASCII letters, any case ("fr", "FR")
//	phonetext at most one '+' and only as the first non-space rune
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("region", validateRegion)
	_ = v.RegisterValidation("phonetext", validatePhoneText)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func validateRegion(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func validatePhoneText(fl validator.FieldLevel) bool {
	seenContent := false
	for _, r := range fl.Field().String() {
		switch {
		case r == '+':
			if seenContent {
				return false
			}
			seenContent = true
		case r == ' ' || r == '\t':
		default:
			seenContent = true
		}
	}
	return true
}
