package validatus

import (
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type stringRule struct {
	validator func(string) bool
	desc      string
}

// NewRule returns a rule backed by a plain string predicate. The rule ignores
// any configuration and uses desc as its schema description.
func NewRule(validator func(string) bool, desc string) Rule {
	return stringRule{validator, desc}
}

func (r stringRule) Check(value string, _ any) (bool, error) {
	return r.validator(value), nil
}

func (r stringRule) Describe(_ any, schema *openapi3.Schema) error {
	appendDescription(schema, r.desc)
	return nil
}

type custom struct {
	f    CheckFunc
	desc string
}

// Custom returns a rule that uses f for checking and desc for documentation.
func Custom(f CheckFunc, desc string) Rule {
	return custom{
		f:    f,
		desc: desc,
	}
}

func (r custom) Check(value string, config any) (bool, error) {
	return r.f(value, config)
}

func (r custom) Describe(_ any, schema *openapi3.Schema) error {
	appendDescription(schema, r.desc)
	return nil
}

func appendDescription(schema *openapi3.Schema, desc string) {
	if desc == "" {
		return
	}
	if schema.Description != "" && !strings.HasSuffix(schema.Description, " ") {
		schema.Description += " "
	}
	schema.Description += desc
}

// decodeOptions converts a loosely typed config into T. A nil config yields
// defaults, a T or *T is used as is, anything else goes through a JSON round
// trip on top of defaults so absent keys keep their default values.
func decodeOptions[T any](config any, defaults T) (T, error) {
	switch c := config.(type) {
	case nil:
		return defaults, nil
	case T:
		return c, nil
	case *T:
		if c == nil {
			return defaults, nil
		}
		return *c, nil
	}

	out := defaults
	b, err := json.Marshal(config)
	if err != nil {
		return defaults, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return defaults, err
	}
	return out, nil
}
