package validatus

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Schema describes descriptors as an OpenAPI string schema. Each rule adds
// what it can express (lengths, formats, patterns, enums) and falls back to
// the schema description for the rest.
func (r *Registry) Schema(descriptors ...Descriptor) (*openapi3.Schema, error) {
	rules, err := r.resolve(descriptors)
	if err != nil {
		return nil, err
	}

	schema := openapi3.NewStringSchema()
	for i, rr := range rules {
		if err := rr.rule.Describe(rr.config, schema); err != nil {
			return nil, &DescriptorError{Index: i, Name: rr.name, Err: err}
		}
	}
	return schema, nil
}

// NewSchemaRef is like [Registry.Schema] on the [Default] registry, wrapped in
// a schema reference ready to be placed in an OpenAPI document.
func NewSchemaRef(descriptors ...Descriptor) (*openapi3.SchemaRef, error) {
	schema, err := Default.Schema(descriptors...)
	if err != nil {
		return nil, err
	}
	return schema.NewRef(), nil
}
