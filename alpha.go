package validatus

import (
	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// charsetRule checks that a non-empty value is made of a single character
// class. govalidator accepts the empty string for these checks, validator.js
// rule set does not.
type charsetRule struct {
	check   func(string) bool
	pattern string
	err     validation.Error
}

var (
	// Alpha passes for values made only of ASCII letters.
	Alpha Rule = charsetRule{
		govalidator.IsAlpha,
		"^[a-zA-Z]+$",
		validation.NewError("validation_is_alpha", "must contain English letters only"),
	}

	// Alphanumeric passes for values made only of ASCII letters and digits.
	Alphanumeric Rule = charsetRule{
		govalidator.IsAlphanumeric,
		"^[a-zA-Z0-9]+$",
		validation.NewError("validation_is_alphanumeric", "must contain English letters and digits only"),
	}

	// Numeric passes for values made only of digits, with an optional sign.
	Numeric Rule = charsetRule{
		isSignedNumeric,
		"^[-+]?[0-9]+$",
		validation.NewError("validation_is_numeric", "must contain digits only"),
	}
)

func isSignedNumeric(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return s != "" && govalidator.IsNumeric(s)
}

func (r charsetRule) Check(value string, _ any) (bool, error) {
	if value == "" {
		return false, nil
	}
	return r.check(value), nil
}

func (r charsetRule) Describe(_ any, schema *openapi3.Schema) error {
	if schema.Pattern == "" {
		schema.Pattern = r.pattern
		return nil
	}
	appendDescription(schema, r.err.Message())
	return nil
}

func (r charsetRule) Message(any) validation.Error {
	return r.err
}
