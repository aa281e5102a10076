package validatus

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule is returned when a descriptor names a rule that is not
	// in the registry.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrMalformedDescriptor is returned when a descriptor is neither a rule
	// name nor a single-key name to config pair.
	ErrMalformedDescriptor = errors.New("malformed rule descriptor")

	errInvalidConfig = errors.New("invalid rule config")
)

// DescriptorError reports which descriptor broke an evaluation.
type DescriptorError struct {
	Index int
	Name  string
	Err   error
}

func (e *DescriptorError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("rule %d: %s", e.Index, e.Err)
	}
	return fmt.Sprintf("rule %d (%s): %s", e.Index, e.Name, e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

func invalidConfig(name string, config any) error {
	return fmt.Errorf("%w for %s: %#v", errInvalidConfig, name, config)
}
