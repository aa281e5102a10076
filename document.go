package validatus

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// CheckFunc reports whether value satisfies a rule under config. A non-nil
	// error means config could not be interpreted.
	CheckFunc func(value string, config any) (bool, error)

	// Rule is the interface that all registry rules must implement.
	Rule interface {
		Check(value string, config any) (bool, error)
		Describe(config any, schema *openapi3.Schema) error
	}

	// Messenger is implemented by rules that carry their own failure message.
	// Rules without one get a generic message from [Registry.Validate].
	Messenger interface {
		Message(config any) validation.Error
	}

	// ValidationErrors maps rule names to their failures. It is an alias for
	// [validation.Errors] from ozzo-validation.
	ValidationErrors = validation.Errors
)

// Ptr returns a pointer to v. Handy for optional option fields.
func Ptr[T any](v T) *T {
	return &v
}
