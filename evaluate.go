package validatus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
)

// Validations holds one result per rule name, in the order the rules were
// first listed.
type Validations struct {
	names   []string
	results map[string]bool
}

func (v *Validations) set(name string, ok bool) {
	if v.results == nil {
		v.results = map[string]bool{}
	}
	if _, seen := v.results[name]; !seen {
		v.names = append(v.names, name)
	}
	v.results[name] = ok
}

// Get returns the result for name and whether the rule was evaluated.
func (v Validations) Get(name string) (ok, found bool) {
	ok, found = v.results[name]
	return ok, found
}

// Passed reports whether the named rule was evaluated and passed.
func (v Validations) Passed(name string) bool {
	return v.results[name]
}

// Len returns the number of evaluated rules.
func (v Validations) Len() int {
	return len(v.names)
}

// Names returns the rule names in evaluation order.
func (v Validations) Names() []string {
	return append([]string(nil), v.names...)
}

// All iterates over the results in evaluation order.
func (v Validations) All() iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		for _, name := range v.names {
			if !yield(name, v.results[name]) {
				return
			}
		}
	}
}

// Map returns a copy of the results.
func (v Validations) Map() map[string]bool {
	if v.results == nil {
		return map[string]bool{}
	}
	return maps.Clone(v.results)
}

// MarshalJSON encodes the results as an object keyed in evaluation order.
func (v Validations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range v.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if v.results[name] {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the derived validation state of a value.
type Result struct {
	Validations Validations `json:"validations"`
	// Valid is true when at least one rule ran and every rule passed.
	Valid bool `json:"valid"`
}

// Evaluate runs descriptors against value using the [Default] registry.
func Evaluate(value string, descriptors ...Descriptor) (Result, error) {
	return Default.Evaluate(value, descriptors...)
}

type resolved struct {
	name   string
	rule   Rule
	config any
}

func (r *Registry) resolve(descriptors []Descriptor) ([]resolved, error) {
	out := make([]resolved, len(descriptors))
	for i, d := range descriptors {
		if d.Name == "" {
			return nil, &DescriptorError{Index: i, Err: fmt.Errorf("%w: empty rule name", ErrMalformedDescriptor)}
		}
		rule, err := r.Lookup(d.Name)
		if err != nil {
			return nil, &DescriptorError{Index: i, Name: d.Name, Err: err}
		}
		out[i] = resolved{d.Name, rule, d.Config}
	}
	return out, nil
}

// check runs a single rule. Configs the rule cannot interpret fail closed.
func (r *Registry) check(rr resolved, value string) bool {
	ok, err := rr.rule.Check(value, rr.config)
	if err != nil {
		r.log.Debug().Err(err).Str("rule", rr.name).Msg("rule config rejected")
		return false
	}
	return ok
}

// Evaluate runs every descriptor against value and returns the per-rule
// results together with the aggregate validity flag.
//
// All descriptors are resolved before any rule runs: an unknown or unnamed
// rule fails the whole call with a [*DescriptorError] and no partial result.
// When a rule name is listed twice the later result wins.
func (r *Registry) Evaluate(value string, descriptors ...Descriptor) (Result, error) {
	rules, err := r.resolve(descriptors)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, rr := range rules {
		res.Validations.set(rr.name, r.check(rr, value))
	}

	res.Valid = res.Validations.Len() > 0
	for _, ok := range res.Validations.results {
		res.Valid = res.Valid && ok
	}
	return res, nil
}
