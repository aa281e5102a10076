package validatus

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredRule struct{}

// Required passes when the value is non-empty after trimming whitespace.
var Required Rule = requiredRule{}

func (requiredRule) Check(value string, _ any) (bool, error) {
	return validation.Required.Validate(strings.TrimSpace(value)) == nil, nil
}

func (requiredRule) Describe(_ any, schema *openapi3.Schema) error {
	if schema.MinLength < 1 {
		schema.MinLength = 1
	}
	appendDescription(schema, "required")
	return nil
}

func (requiredRule) Message(any) validation.Error {
	return validation.ErrRequired
}
