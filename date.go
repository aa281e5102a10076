package validatus

import (
	"regexp"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultDateFormat is the isDate format used when none is configured.
const DefaultDateFormat = "YYYY/MM/DD"

// DateOptions configures the isDate rule. Format is either a token format
// such as YYYY-MM-DD or a Go time layout. Min and Max are optional bounds
// written in the same format. A bare string config is the format.
type DateOptions struct {
	Format string `json:"format"`
	Min    string `json:"min,omitempty"`
	Max    string `json:"max,omitempty"`
}

var (
	dateTokenFormat = regexp.MustCompile(`^(?i:[ymd]+(?:[/.\- ][ymd]+)*)$`)
	dateTokens      = strings.NewReplacer("YYYY", "2006", "YY", "06", "MM", "01", "DD", "02", "M", "1", "D", "2")
)

// dateLayout turns a token format into a Go layout. Go layouts pass through.
func dateLayout(format string) string {
	if dateTokenFormat.MatchString(format) {
		return dateTokens.Replace(strings.ToUpper(format))
	}
	return format
}

type dateConfig struct {
	layout   string
	min, max time.Time
}

func (c dateConfig) rule() validation.DateRule {
	r := validation.Date(c.layout)
	if !c.min.IsZero() {
		r = r.Min(c.min)
	}
	if !c.max.IsZero() {
		r = r.Max(c.max)
	}
	return r
}

func dateOptions(config any) (dateConfig, error) {
	var opts DateOptions
	if s, ok := config.(string); ok {
		opts.Format = s
	} else {
		var err error
		if opts, err = decodeOptions(config, DateOptions{Format: DefaultDateFormat}); err != nil {
			return dateConfig{}, invalidConfig("isDate", config)
		}
	}
	if strings.TrimSpace(opts.Format) == "" {
		return dateConfig{}, invalidConfig("isDate", config)
	}

	c := dateConfig{layout: dateLayout(opts.Format)}
	var err error
	if opts.Min != "" {
		if c.min, err = time.Parse(c.layout, opts.Min); err != nil {
			return dateConfig{}, invalidConfig("isDate", config)
		}
	}
	if opts.Max != "" {
		if c.max, err = time.Parse(c.layout, opts.Max); err != nil {
			return dateConfig{}, invalidConfig("isDate", config)
		}
	}
	return c, nil
}

type dateRule struct{}

// Date passes when the value parses in the configured format and falls
// within the optional bounds.
var Date Rule = dateRule{}

func (dateRule) Check(value string, config any) (bool, error) {
	c, err := dateOptions(config)
	if err != nil {
		return false, err
	}
	// ozzo passes empty values unchecked.
	if value == "" {
		return false, nil
	}
	return c.rule().Validate(value) == nil, nil
}

func (dateRule) Describe(config any, schema *openapi3.Schema) error {
	c, err := dateOptions(config)
	if err != nil {
		return err
	}
	if schema.Format == "" {
		schema.Format = c.layout
	} else {
		appendDescription(schema, "date "+c.layout)
	}
	if !c.min.IsZero() {
		appendDescription(schema, "> "+c.min.Format(c.layout))
	}
	if !c.max.IsZero() {
		appendDescription(schema, "< "+c.max.Format(c.layout))
	}
	return nil
}

func (dateRule) Message(any) validation.Error {
	return validation.ErrDateInvalid
}
