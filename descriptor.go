package validatus

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor names a rule and optionally carries its configuration.
type Descriptor struct {
	Name   string
	Config any
}

// Is returns a descriptor for a rule that takes no configuration.
func Is(name string) Descriptor {
	return Descriptor{Name: name}
}

// With returns a descriptor for a rule with the given configuration.
func With(name string, config any) Descriptor {
	return Descriptor{Name: name, Config: config}
}

func (d Descriptor) String() string {
	if d.Config == nil {
		return d.Name
	}
	return fmt.Sprintf("%s=%v", d.Name, d.Config)
}

// MarshalJSON encodes bare descriptors as a string and configured ones as a
// single-key object, the same shapes ParseDescriptor accepts.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	if d.Config == nil {
		return json.Marshal(d.Name)
	}
	return json.Marshal(map[string]any{d.Name: d.Config})
}

// ParseDescriptor converts a loosely typed descriptor into a [Descriptor].
// Accepted shapes are a rule name string, a Descriptor, or a map with exactly
// one key.
func ParseDescriptor(raw any) (Descriptor, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return Descriptor{}, fmt.Errorf("%w: empty rule name", ErrMalformedDescriptor)
		}
		return Is(v), nil
	case Descriptor:
		if v.Name == "" {
			return Descriptor{}, fmt.Errorf("%w: empty rule name", ErrMalformedDescriptor)
		}
		return v, nil
	case map[string]any:
		if len(v) != 1 {
			return Descriptor{}, fmt.Errorf("%w: expected one key, got %d", ErrMalformedDescriptor, len(v))
		}
		for k, cfg := range v {
			return ParseDescriptor(With(k, cfg))
		}
	case map[string]string:
		if len(v) != 1 {
			return Descriptor{}, fmt.Errorf("%w: expected one key, got %d", ErrMalformedDescriptor, len(v))
		}
		for k, cfg := range v {
			return ParseDescriptor(With(k, cfg))
		}
	case map[any]any:
		if len(v) != 1 {
			return Descriptor{}, fmt.Errorf("%w: expected one key, got %d", ErrMalformedDescriptor, len(v))
		}
		for k, cfg := range v {
			name, ok := k.(string)
			if !ok {
				return Descriptor{}, fmt.Errorf("%w: rule name must be a string, got %T", ErrMalformedDescriptor, k)
			}
			return ParseDescriptor(With(name, cfg))
		}
	}
	return Descriptor{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedDescriptor, raw)
}

// ParseDescriptors parses every element of raw, stopping at the first
// malformed one.
func ParseDescriptors(raw []any) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(raw))
	for i, r := range raw {
		d, err := ParseDescriptor(r)
		if err != nil {
			return nil, &DescriptorError{Index: i, Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

// Descriptors is an ordered rule list that can be loaded from JSON or YAML:
//
//	- required
//	- isEmail
//	- contains: "@gmail"
//	- isLength: {min: 3, max: 15}
type Descriptors []Descriptor

func (ds *Descriptors) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDescriptors(raw)
	if err != nil {
		return err
	}
	*ds = parsed
	return nil
}

func (ds *Descriptors) UnmarshalYAML(node *yaml.Node) error {
	var raw []any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseDescriptors(raw)
	if err != nil {
		return err
	}
	*ds = parsed
	return nil
}
