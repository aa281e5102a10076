package validatus

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate runs descriptors against value using the [Default] registry and
// reports failures as [ValidationErrors].
func Validate(value string, descriptors ...Descriptor) error {
	return Default.Validate(value, descriptors...)
}

// Validate runs descriptors against value. It returns nil when every rule
// passes, [ValidationErrors] keyed by rule name for the rules that failed, or
// a [*DescriptorError] when the descriptors themselves are broken.
//
// Unlike [Registry.Evaluate], an empty descriptor list is not an error here:
// there is simply nothing that failed.
func (r *Registry) Validate(value string, descriptors ...Descriptor) error {
	rules, err := r.resolve(descriptors)
	if err != nil {
		return err
	}

	errs := ValidationErrors{}
	for _, rr := range rules {
		if r.check(rr, value) {
			delete(errs, rr.name)
			continue
		}
		errs[rr.name] = message(rr)
	}
	return errs.Filter()
}

func message(rr resolved) validation.Error {
	if m, ok := rr.rule.(Messenger); ok {
		return m.Message(rr.config)
	}
	return validation.NewError("validation_"+rr.name, "failed rule {{.rule}}").
		SetParams(map[string]any{"rule": rr.name})
}

// Rules converts descriptors into ozzo-validation rules so they can be used
// with [validation.Validate] and [validation.ValidateStruct]:
//
//	validation.ValidateStruct(&form,
//	    validation.Field(&form.Email, validatus.Default.Rules(validatus.Is("isEmail"))...),
//	)
//
// Unknown rule names surface as ozzo internal errors when validated.
func (r *Registry) Rules(descriptors ...Descriptor) []validation.Rule {
	out := make([]validation.Rule, len(descriptors))
	for i, d := range descriptors {
		out[i] = &ozzoBridge{registry: r, descriptor: d}
	}
	return out
}

// ozzoBridge is an ozzo validation.Rule backed by a registry rule.
type ozzoBridge struct {
	registry   *Registry
	descriptor Descriptor
}

func (b *ozzoBridge) Validate(value any) error {
	rules, err := b.registry.resolve([]Descriptor{b.descriptor})
	if err != nil {
		return validation.NewInternalError(err)
	}
	s, err := stringValue(value)
	if err != nil {
		return err
	}
	if b.registry.check(rules[0], s) {
		return nil
	}
	return message(rules[0])
}

// stringValue coerces the values ozzo hands to rules into the string the
// registry rules work on. Nil pointers become the empty string.
func stringValue(value any) (string, error) {
	value, isNil := validation.Indirect(value)
	if isNil {
		return "", nil
	}
	switch v := value.(type) {
	case []byte:
		return string(v), nil
	}
	if s, ok := scalarString(value); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string, got %T", value)
}
