package validatus

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

// Registry maps rule names to rules. It is read-only once built, so a single
// Registry can be shared by any number of callers.
type Registry struct {
	rules map[string]Rule
	log   zerolog.Logger
}

// Option configures a Registry built by [New].
type Option func(*registryConfig)

type registryConfig struct {
	builtins bool
	extra    map[string]Rule
	log      zerolog.Logger
}

// WithRule adds or replaces a named rule. A nil rule removes the name.
func WithRule(name string, rule Rule) Option {
	return func(c *registryConfig) {
		c.extra[name] = rule
	}
}

// WithoutBuiltins starts from an empty registry.
func WithoutBuiltins() Option {
	return func(c *registryConfig) {
		c.builtins = false
	}
}

// WithLogger sets the logger used to report rule configs that could not be
// interpreted.
func WithLogger(l zerolog.Logger) Option {
	return func(c *registryConfig) {
		c.log = l
	}
}

// Builtins returns the built-in rules keyed by name.
func Builtins() map[string]Rule {
	return map[string]Rule{
		"required":       Required,
		"isRequired":     Required,
		"isEmail":        Email,
		"isAlpha":        Alpha,
		"isAlphanumeric": Alphanumeric,
		"isNumeric":      Numeric,
		"contains":       Contains,
		"equals":         Equals,
		"matches":        Matches,
		"isIn":           In,
		"isLength":       Length,
		"isInt":          Int,
		"isFloat":        Float,
		"isURL":          URL,
		"isUUID":         UUID,
		"isDate":         Date,
		"isIP":           IP,
		"isJSON":         JSON,
		"isHexColor":     HexColor,
		"isLowercase":    Lowercase,
		"isUppercase":    Uppercase,
	}
}

// Default holds the built-in rules.
var Default = New()

// New builds a Registry from the built-in rules and the given options.
func New(opts ...Option) *Registry {
	c := registryConfig{
		builtins: true,
		extra:    map[string]Rule{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	rules := map[string]Rule{}
	if c.builtins {
		rules = Builtins()
	}
	for name, rule := range c.extra {
		if rule == nil {
			delete(rules, name)
			continue
		}
		rules[name] = rule
	}

	return &Registry{
		rules: rules,
		log:   c.log,
	}
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return rule, nil
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.rules))
}
