package validatus

import (
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func allowedValues(config any) ([]string, error) {
	switch v := config.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i := range v {
			s, ok := scalarString(v[i])
			if !ok {
				return nil, invalidConfig("isIn", config)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, invalidConfig("isIn", config)
}

type inRule struct{}

// In passes when the value is one of the configured strings.
var In Rule = inRule{}

func (inRule) Check(value string, config any) (bool, error) {
	values, err := allowedValues(config)
	if err != nil {
		return false, err
	}
	// ozzo passes empty values unchecked.
	if value == "" {
		return slices.Contains(values, ""), nil
	}
	elements := make([]any, len(values))
	for i := range values {
		elements[i] = values[i]
	}
	return validation.In(elements...).Validate(value) == nil, nil
}

func (inRule) Describe(config any, schema *openapi3.Schema) error {
	values, err := allowedValues(config)
	if err != nil {
		return err
	}
	schema.Enum = make([]any, len(values))
	for i := range values {
		schema.Enum[i] = values[i]
	}
	return nil
}

func (inRule) Message(config any) validation.Error {
	values, _ := allowedValues(config)
	want := make([]string, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
	}
	return validation.NewError("validation_in_invalid", fmt.Sprintf("must be one of %s", strings.Join(want, ", ")))
}
