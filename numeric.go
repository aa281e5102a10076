package validatus

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Bounds are the optional numeric limits shared by isInt and isFloat. Min and
// Max are inclusive, Gt and Lt exclusive.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
	Gt  *float64 `json:"gt,omitempty"`
	Lt  *float64 `json:"lt,omitempty"`
}

func (b Bounds) contains(n float64) bool {
	return (b.Min == nil || n >= *b.Min) &&
		(b.Max == nil || n <= *b.Max) &&
		(b.Gt == nil || n > *b.Gt) &&
		(b.Lt == nil || n < *b.Lt)
}

func (b Bounds) describe(schema *openapi3.Schema) {
	if b.Min != nil {
		schema.Min = b.Min
	}
	if b.Max != nil {
		schema.Max = b.Max
	}
	if b.Gt != nil {
		appendDescription(schema, fmt.Sprintf("greater than %g", *b.Gt))
	}
	if b.Lt != nil {
		appendDescription(schema, fmt.Sprintf("less than %g", *b.Lt))
	}
}

func (b Bounds) String() string {
	var parts []string
	if b.Min != nil {
		parts = append(parts, fmt.Sprintf(">= %g", *b.Min))
	}
	if b.Gt != nil {
		parts = append(parts, fmt.Sprintf("> %g", *b.Gt))
	}
	if b.Max != nil {
		parts = append(parts, fmt.Sprintf("<= %g", *b.Max))
	}
	if b.Lt != nil {
		parts = append(parts, fmt.Sprintf("< %g", *b.Lt))
	}
	return strings.Join(parts, " and ")
}

// IntOptions configures the isInt rule. Leading zeroes are allowed unless
// AllowLeadingZeroes is set to false.
type IntOptions struct {
	Bounds
	AllowLeadingZeroes *bool `json:"allow_leading_zeroes,omitempty"`
}

// FloatOptions configures the isFloat rule.
type FloatOptions struct {
	Bounds
}

var (
	intRegexp             = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)$`)
	intLeadingZeroesRegex = regexp.MustCompile(`^[-+]?[0-9]+$`)
)

type intRule struct{}

// Int passes when the value is an integer within the configured bounds.
var Int Rule = intRule{}

// parseThresholds copies a map config with numeric string thresholds parsed,
// so {"min": "10"} reads the same as {"min": 10}. Non-numeric strings are
// left for the decoder to reject.
func parseThresholds(config any) any {
	var m map[string]any
	switch c := config.(type) {
	case map[string]any:
		m = c
	case map[string]string:
		m = make(map[string]any, len(c))
		for k, s := range c {
			m[k] = s
		}
	default:
		return config
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			switch k {
			case "min", "max", "gt", "lt":
				if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
					val = n
				}
			case "allow_leading_zeroes":
				if b, err := strconv.ParseBool(s); err == nil {
					val = b
				}
			}
		}
		out[k] = val
	}
	return out
}

func intOptions(config any) (IntOptions, error) {
	opts, err := decodeOptions(parseThresholds(config), IntOptions{})
	if err != nil {
		return opts, invalidConfig("isInt", config)
	}
	return opts, nil
}

func (intRule) Check(value string, config any) (bool, error) {
	opts, err := intOptions(config)
	if err != nil {
		return false, err
	}
	re := intLeadingZeroesRegex
	if opts.AllowLeadingZeroes != nil && !*opts.AllowLeadingZeroes {
		re = intRegexp
	}
	if !re.MatchString(value) {
		return false, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, nil
	}
	return opts.contains(n), nil
}

func (intRule) Describe(config any, schema *openapi3.Schema) error {
	opts, err := intOptions(config)
	if err != nil {
		return err
	}
	if schema.Pattern == "" {
		schema.Pattern = intLeadingZeroesRegex.String()
	}
	opts.describe(schema)
	appendDescription(schema, "integer")
	return nil
}

func (intRule) Message(config any) validation.Error {
	opts, _ := intOptions(config)
	if b := opts.Bounds.String(); b != "" {
		return validation.NewError("validation_is_int", "must be an integer {{.bounds}}").
			SetParams(map[string]any{"bounds": b})
	}
	return validation.NewError("validation_is_int", "must be an integer number")
}

type floatRule struct{}

// Float passes when the value is a decimal number within the configured
// bounds.
var Float Rule = floatRule{}

func floatOptions(config any) (FloatOptions, error) {
	opts, err := decodeOptions(parseThresholds(config), FloatOptions{})
	if err != nil {
		return opts, invalidConfig("isFloat", config)
	}
	return opts, nil
}

func (floatRule) Check(value string, config any) (bool, error) {
	opts, err := floatOptions(config)
	if err != nil {
		return false, err
	}
	switch value {
	case "", ".", "-", "+":
		return false, nil
	}
	if !govalidator.IsFloat(value) {
		return false, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, nil
	}
	return opts.contains(n), nil
}

func (floatRule) Describe(config any, schema *openapi3.Schema) error {
	opts, err := floatOptions(config)
	if err != nil {
		return err
	}
	opts.describe(schema)
	appendDescription(schema, "decimal number")
	return nil
}

func (floatRule) Message(config any) validation.Error {
	opts, _ := floatOptions(config)
	if b := opts.Bounds.String(); b != "" {
		return validation.NewError("validation_is_float", "must be a number {{.bounds}}").
			SetParams(map[string]any{"bounds": b})
	}
	return validation.NewError("validation_is_float", "must be a floating point number")
}
