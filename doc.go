// Package validatus binds a text value to an ordered list of named validation
// rules and derives per-rule results plus an aggregate validity flag.
//
// Rules are referenced by name, either bare or with a configuration value:
//
//	res, err := validatus.Evaluate("user@gmail.com",
//	    validatus.Is("required"),
//	    validatus.Is("isEmail"),
//	    validatus.With("contains", "@gmail"),
//	    validatus.With("isLength", validatus.LengthOptions{Min: 3, Max: validatus.Ptr(30)}),
//	)
//
// [Field] wraps the evaluator for input bindings: it re-evaluates on every
// value change and tracks whether the input has been touched.
//
// The same descriptors can be handed to ozzo-validation through
// [Registry.Rules], or described as an OpenAPI schema through
// [Registry.Schema].
package validatus
