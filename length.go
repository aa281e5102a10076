package validatus

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LengthOptions configures the isLength rule. Length is counted in runes.
// A bare number config is shorthand for LengthOptions{Min: n}.
type LengthOptions struct {
	Min int  `json:"min"`
	Max *int `json:"max,omitempty"`
}

func lengthOptions(config any) (LengthOptions, error) {
	switch v := config.(type) {
	case int:
		return LengthOptions{Min: v}, nil
	case float64:
		if v == float64(int(v)) && v >= 0 {
			return LengthOptions{Min: int(v)}, nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			return LengthOptions{Min: n}, nil
		}
		return LengthOptions{}, invalidConfig("isLength", config)
	}
	opts, err := decodeOptions(config, LengthOptions{})
	if err != nil || opts.Min < 0 || (opts.Max != nil && *opts.Max < 0) {
		return opts, invalidConfig("isLength", config)
	}
	return opts, nil
}

type lengthRule struct{}

// Length passes when the rune length of the value is within the configured
// bounds.
var Length Rule = lengthRule{}

func (lengthRule) Check(value string, config any) (bool, error) {
	opts, err := lengthOptions(config)
	if err != nil {
		return false, err
	}
	// ozzo skips empty values and reads a zero max as unbounded.
	switch {
	case value == "":
		return opts.Min == 0, nil
	case opts.Max == nil && opts.Min == 0:
		return true, nil
	case opts.Max != nil && *opts.Max == 0:
		return false, nil
	}
	hi := 0
	if opts.Max != nil {
		hi = *opts.Max
	}
	return validation.RuneLength(opts.Min, hi).Validate(value) == nil, nil
}

func (lengthRule) Describe(config any, schema *openapi3.Schema) error {
	opts, err := lengthOptions(config)
	if err != nil {
		return err
	}
	if lo := uint64(opts.Min); lo > schema.MinLength {
		schema.MinLength = lo
	}
	if opts.Max != nil {
		hi := uint64(*opts.Max)
		schema.MaxLength = &hi
	}
	return nil
}

func (lengthRule) Message(config any) validation.Error {
	opts, _ := lengthOptions(config)
	switch {
	case opts.Max == nil:
		return validation.ErrLengthTooShort.SetParams(map[string]any{"min": opts.Min})
	case opts.Min == 0:
		return validation.ErrLengthTooLong.SetParams(map[string]any{"max": *opts.Max})
	case opts.Min == *opts.Max:
		return validation.ErrLengthInvalid.SetParams(map[string]any{"min": opts.Min})
	}
	return validation.ErrLengthOutOfRange.SetParams(map[string]any{"min": opts.Min, "max": *opts.Max})
}
