package validatus

import (
	"fmt"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type formatRule struct {
	check  func(string) bool
	format string
	err    validation.Error
}

var (
	// Email passes for values shaped like an email address.
	Email Rule = formatRule{
		govalidator.IsEmail,
		"email",
		validation.NewError("validation_is_email", "must be a valid email address"),
	}

	// JSON passes for values that parse as JSON.
	JSON Rule = formatRule{
		govalidator.IsJSON,
		"",
		validation.NewError("validation_is_json", "must be in valid JSON format"),
	}

	// HexColor passes for #rgb and #rrggbb colors, with or without the hash.
	HexColor Rule = formatRule{
		govalidator.IsHexcolor,
		"",
		validation.NewError("validation_is_hex_color", "must be a valid hexadecimal color code"),
	}

	// Lowercase passes when the value has no upper case letters.
	Lowercase Rule = formatRule{
		govalidator.IsLowerCase,
		"",
		validation.NewError("validation_is_lower_case", "must be in lower case"),
	}

	// Uppercase passes when the value has no lower case letters.
	Uppercase Rule = formatRule{
		govalidator.IsUpperCase,
		"",
		validation.NewError("validation_is_upper_case", "must be in upper case"),
	}
)

func (r formatRule) Check(value string, _ any) (bool, error) {
	return r.check(value), nil
}

func (r formatRule) Describe(_ any, schema *openapi3.Schema) error {
	if r.format != "" && schema.Format == "" {
		schema.Format = r.format
		return nil
	}
	appendDescription(schema, r.err.Message())
	return nil
}

func (r formatRule) Message(any) validation.Error {
	return r.err
}

// versionOf reads an optional version number from config. It accepts
// numbers and numeric strings, zero means any version.
func versionOf(config any) (int, error) {
	switch v := config.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("version must be whole, got %v", v)
		}
		return int(v), nil
	case string:
		if v == "" || v == "all" {
			return 0, nil
		}
		return strconv.Atoi(v)
	}
	return 0, fmt.Errorf("unsupported version type %T", config)
}

type uuidRule struct{}

// UUID passes for UUIDs. The config may pin the version to 3, 4 or 5.
var UUID Rule = uuidRule{}

func (uuidRule) Check(value string, config any) (bool, error) {
	version, err := versionOf(config)
	if err != nil {
		return false, invalidConfig("isUUID", config)
	}
	switch version {
	case 0:
		return govalidator.IsUUID(value), nil
	case 3:
		return govalidator.IsUUIDv3(value), nil
	case 4:
		return govalidator.IsUUIDv4(value), nil
	case 5:
		return govalidator.IsUUIDv5(value), nil
	}
	return false, invalidConfig("isUUID", config)
}

func (uuidRule) Describe(_ any, schema *openapi3.Schema) error {
	schema.Format = "uuid"
	return nil
}

func (uuidRule) Message(any) validation.Error {
	return validation.NewError("validation_is_uuid", "must be a valid UUID")
}

type ipRule struct{}

// IP passes for IP addresses. The config may pin the version to 4 or 6.
var IP Rule = ipRule{}

func (ipRule) Check(value string, config any) (bool, error) {
	version, err := versionOf(config)
	if err != nil {
		return false, invalidConfig("isIP", config)
	}
	switch version {
	case 0:
		return govalidator.IsIP(value), nil
	case 4:
		return govalidator.IsIPv4(value), nil
	case 6:
		return govalidator.IsIPv6(value), nil
	}
	return false, invalidConfig("isIP", config)
}

func (ipRule) Describe(config any, schema *openapi3.Schema) error {
	version, err := versionOf(config)
	if err != nil {
		return invalidConfig("isIP", config)
	}
	switch version {
	case 4:
		schema.Format = "ipv4"
	case 6:
		schema.Format = "ipv6"
	default:
		appendDescription(schema, "IPv4 or IPv6 address")
	}
	return nil
}

func (ipRule) Message(config any) validation.Error {
	version, _ := versionOf(config)
	switch version {
	case 4:
		return validation.NewError("validation_is_ipv4", "must be a valid IPv4 address")
	case 6:
		return validation.NewError("validation_is_ipv6", "must be a valid IPv6 address")
	}
	return validation.NewError("validation_is_ip", "must be a valid IP address")
}
