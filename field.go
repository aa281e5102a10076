package validatus

import (
	"slices"

	"github.com/rs/zerolog"
)

// Update is a value change delivered to a [Field]. It is either [Text] or a
// [ChangeEvent]; a nil Update leaves the value as it is.
type Update interface {
	text() string
}

// Text sets the value directly.
type Text string

func (t Text) text() string { return string(t) }

// ChangeEvent is a change notification from an input binding carrying the
// input's new value.
type ChangeEvent struct {
	Value string
}

func (e ChangeEvent) text() string { return e.Value }

// BlurSource is implemented by input bindings that can report focus loss.
// The registered callback may be invoked any number of times.
type BlurSource interface {
	OnBlur(fn func())
}

// State is a snapshot of a Field.
type State struct {
	Value       string
	Validations Validations
	Valid       bool
	Touched     bool
	// TracksTouched is true when the field was built with a BlurSource.
	TracksTouched bool
	// Err is set when the rules could not be evaluated. It is distinct from
	// every rule failing.
	Err error
}

// FieldOption configures a Field built by [NewField].
type FieldOption func(*Field)

// WithRegistry evaluates the field's rules against r instead of [Default].
func WithRegistry(r *Registry) FieldOption {
	return func(f *Field) {
		f.registry = r
	}
}

// WithBlurSource marks the field touched the first time src reports a blur.
func WithBlurSource(src BlurSource) FieldOption {
	return func(f *Field) {
		f.blur = src
	}
}

// WithFieldLogger sets the logger used for evaluation errors.
func WithFieldLogger(l zerolog.Logger) FieldOption {
	return func(f *Field) {
		f.log = l
	}
}

type subscriber struct {
	id int
	fn func(State)
}

// Field binds a value to a rule list and keeps the derived validation state
// current. Every value or rule change re-evaluates synchronously. A Field is
// not safe for concurrent use.
type Field struct {
	registry *Registry
	blur     BlurSource
	log      zerolog.Logger

	rules   []Descriptor
	value   string
	result  Result
	err     error
	touched bool

	subs   []subscriber
	nextID int
}

// NewField returns a Field holding initial and evaluates it against
// descriptors. It fails if the descriptors reference unknown rules.
func NewField(initial string, descriptors []Descriptor, opts ...FieldOption) (*Field, error) {
	f := &Field{
		registry: Default,
		log:      zerolog.Nop(),
		rules:    slices.Clone(descriptors),
		value:    initial,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.evaluate(); err != nil {
		return nil, err
	}
	if f.blur != nil {
		f.blur.OnBlur(f.NotifyTouched)
	}
	return f, nil
}

func (f *Field) evaluate() error {
	res, err := f.registry.Evaluate(f.value, f.rules...)
	f.result, f.err = res, err
	if err != nil {
		f.log.Debug().Err(err).Msg("field rules could not be evaluated")
	}
	return err
}

// OnChange applies u and re-evaluates. The new value is kept even when
// evaluation fails; the error is returned and also reported by Err.
func (f *Field) OnChange(u Update) error {
	if u != nil {
		f.value = u.text()
	}
	err := f.evaluate()
	f.notify()
	return err
}

// SetRules replaces the rule list and re-evaluates.
func (f *Field) SetRules(descriptors []Descriptor) error {
	f.rules = slices.Clone(descriptors)
	err := f.evaluate()
	f.notify()
	return err
}

// NotifyTouched marks the field touched. Only the first call has an effect.
func (f *Field) NotifyTouched() {
	if f.touched {
		return
	}
	f.touched = true
	f.notify()
}

// Subscribe registers fn to receive the field state after every change. The
// returned function removes the subscription.
func (f *Field) Subscribe(fn func(State)) (cancel func()) {
	id := f.nextID
	f.nextID++
	f.subs = append(f.subs, subscriber{id, fn})
	return func() {
		f.subs = slices.DeleteFunc(f.subs, func(s subscriber) bool { return s.id == id })
	}
}

func (f *Field) notify() {
	if len(f.subs) == 0 {
		return
	}
	st := f.State()
	for _, s := range slices.Clone(f.subs) {
		s.fn(st)
	}
}

// Value returns the current value.
func (f *Field) Value() string { return f.value }

// Validations returns the per-rule results of the last evaluation.
func (f *Field) Validations() Validations { return f.result.Validations }

// IsValid reports whether every rule passed on the last evaluation.
func (f *Field) IsValid() bool { return f.result.Valid }

// IsTouched reports whether the field has been blurred at least once.
func (f *Field) IsTouched() bool { return f.touched }

// TracksTouched reports whether the field was built with a BlurSource.
func (f *Field) TracksTouched() bool { return f.blur != nil }

// Err returns the error of the last evaluation, or nil.
func (f *Field) Err() error { return f.err }

// State returns a snapshot of the field.
func (f *Field) State() State {
	return State{
		Value:         f.value,
		Validations:   f.result.Validations,
		Valid:         f.result.Valid,
		Touched:       f.touched,
		TracksTouched: f.blur != nil,
		Err:           f.err,
	}
}
