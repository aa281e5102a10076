package validatus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ContainsOptions configures the contains rule. A bare string config is
// shorthand for ContainsOptions{Seed: s}.
type ContainsOptions struct {
	Seed           string `json:"seed"`
	IgnoreCase     bool   `json:"ignore_case"`
	MinOccurrences int    `json:"min_occurrences"`
}

// scalarString stringifies the scalar configs validator.js accepts
// in place of a string.
func scalarString(config any) (string, bool) {
	switch v := config.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(v), true
	}
	return "", false
}

func containsOptions(config any) (ContainsOptions, error) {
	if s, ok := scalarString(config); ok {
		return ContainsOptions{Seed: s, MinOccurrences: 1}, nil
	}
	if config == nil {
		return ContainsOptions{}, invalidConfig("contains", config)
	}
	opts, err := decodeOptions(config, ContainsOptions{MinOccurrences: 1})
	if err != nil {
		return opts, invalidConfig("contains", config)
	}
	if opts.MinOccurrences < 1 {
		opts.MinOccurrences = 1
	}
	return opts, nil
}

type containsRule struct{}

// Contains passes when the value contains the configured seed.
var Contains Rule = containsRule{}

func (containsRule) Check(value string, config any) (bool, error) {
	opts, err := containsOptions(config)
	if err != nil {
		return false, err
	}
	if opts.IgnoreCase {
		value = strings.ToLower(value)
		opts.Seed = strings.ToLower(opts.Seed)
	}
	return strings.Count(value, opts.Seed) >= opts.MinOccurrences, nil
}

func (containsRule) Describe(config any, schema *openapi3.Schema) error {
	opts, err := containsOptions(config)
	if err != nil {
		return err
	}
	if schema.Pattern == "" && !opts.IgnoreCase && opts.MinOccurrences == 1 {
		schema.Pattern = regexp.QuoteMeta(opts.Seed)
		return nil
	}
	appendDescription(schema, fmt.Sprintf("must contain %q", opts.Seed))
	return nil
}

func (containsRule) Message(config any) validation.Error {
	opts, _ := containsOptions(config)
	return validation.NewError("validation_contains", "must contain {{.seed}}").
		SetParams(map[string]any{"seed": opts.Seed})
}

type equalsRule struct{}

// Equals passes when the value equals the configured string exactly.
var Equals Rule = equalsRule{}

func (equalsRule) Check(value string, config any) (bool, error) {
	want, ok := scalarString(config)
	if !ok {
		return false, invalidConfig("equals", config)
	}
	return value == want, nil
}

func (equalsRule) Describe(config any, schema *openapi3.Schema) error {
	want, ok := scalarString(config)
	if !ok {
		return invalidConfig("equals", config)
	}
	schema.Enum = []any{want}
	return nil
}

func (equalsRule) Message(config any) validation.Error {
	want, _ := scalarString(config)
	return validation.NewError("validation_equals", "must equal {{.value}}").
		SetParams(map[string]any{"value": want})
}

// MatchesOptions configures the matches rule. A bare string config is
// shorthand for MatchesOptions{Pattern: s}. Flags may contain "i" for case
// insensitive matching.
type MatchesOptions struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

func matchesPattern(config any) (*regexp.Regexp, MatchesOptions, error) {
	var opts MatchesOptions
	if s, ok := config.(string); ok {
		opts.Pattern = s
	} else {
		var err error
		if opts, err = decodeOptions(config, MatchesOptions{}); err != nil || config == nil {
			return nil, opts, invalidConfig("matches", config)
		}
	}
	expr := opts.Pattern
	if strings.Contains(opts.Flags, "i") {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, opts, invalidConfig("matches", config)
	}
	return re, opts, nil
}

type matchesRule struct{}

// Matches passes when the value matches the configured regular expression.
var Matches Rule = matchesRule{}

func (matchesRule) Check(value string, config any) (bool, error) {
	re, _, err := matchesPattern(config)
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}

func (matchesRule) Describe(config any, schema *openapi3.Schema) error {
	_, opts, err := matchesPattern(config)
	if err != nil {
		return err
	}
	if schema.Pattern == "" && opts.Flags == "" {
		schema.Pattern = opts.Pattern
		return nil
	}
	appendDescription(schema, fmt.Sprintf("must match /%s/%s", opts.Pattern, opts.Flags))
	return nil
}

func (matchesRule) Message(any) validation.Error {
	return validation.ErrMatchInvalid
}
