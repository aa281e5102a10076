package validatus

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxURLLength matches the limit browsers historically put on URLs.
const maxURLLength = 2083

var (
	// Internationalized labels are accepted as typed, not only as punycode.
	hostLabelRegexp = regexp.MustCompile(`^[a-zA-Z0-9_\x{00a1}-\x{ffff}-]+$`)
	tldRegexp       = regexp.MustCompile(`^(?i:[a-z\x{00a1}-\x{00a8}\x{00aa}-\x{d7ff}\x{f900}-\x{fdcf}\x{fdf0}-\x{ffef}]{2,}|xn[a-z0-9-]{2,})$`)
)

// URLOptions configures the isURL rule. Keys missing from a map config keep
// the values of [DefaultURLOptions]; a URLOptions value is used as is.
type URLOptions struct {
	Protocols                 []string `json:"protocols"`
	RequireTLD                bool     `json:"require_tld"`
	RequireProtocol           bool     `json:"require_protocol"`
	RequireHost               bool     `json:"require_host"`
	RequirePort               bool     `json:"require_port"`
	RequireValidProtocol      bool     `json:"require_valid_protocol"`
	AllowUnderscores          bool     `json:"allow_underscores"`
	AllowProtocolRelativeURLs bool     `json:"allow_protocol_relative_urls"`
}

// DefaultURLOptions returns the options isURL uses when none are given.
func DefaultURLOptions() URLOptions {
	return URLOptions{
		Protocols:            []string{"http", "https", "ftp"},
		RequireTLD:           true,
		RequireHost:          true,
		RequireValidProtocol: true,
	}
}

func urlOptions(config any) (URLOptions, error) {
	opts, err := decodeOptions(config, DefaultURLOptions())
	if err != nil {
		return opts, invalidConfig("isURL", config)
	}
	return opts, nil
}

type urlRule struct{}

// URL passes for values shaped like a URL under the configured options.
var URL Rule = urlRule{}

func (urlRule) Check(value string, config any) (bool, error) {
	opts, err := urlOptions(config)
	if err != nil {
		return false, err
	}
	return isURL(value, opts), nil
}

func isURL(s string, opts URLOptions) bool { //nolint:revive // mirrors the step-by-step URL grammar
	if s == "" || len(s) >= maxURLLength || strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}
	if strings.HasPrefix(strings.ToLower(s), "mailto:") {
		return false
	}

	rest := s
	if i := strings.IndexAny(rest, "#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexAny(rest, "?"); i >= 0 {
		rest = rest[:i]
	}

	protocol := ""
	if i := strings.Index(rest, "://"); i >= 0 {
		protocol = strings.ToLower(rest[:i])
		rest = rest[i+3:]
		if opts.RequireValidProtocol && !slices.Contains(opts.Protocols, protocol) {
			return false
		}
	} else if opts.RequireProtocol {
		return false
	} else if strings.HasPrefix(rest, "//") {
		if !opts.AllowProtocolRelativeURLs {
			return false
		}
		rest = rest[2:]
	}
	if rest == "" {
		return false
	}

	hostPart, _, _ := strings.Cut(rest, "/")
	if hostPart == "" {
		return !opts.RequireHost
	}

	if i := strings.LastIndex(hostPart, "@"); i >= 0 {
		auth := hostPart[:i]
		hostPart = hostPart[i+1:]
		user, _, _ := strings.Cut(auth, ":")
		if user == "" || strings.Count(auth, ":") > 1 {
			return false
		}
	}

	host, port := hostPart, ""
	ipv6 := false
	if strings.HasPrefix(hostPart, "[") {
		end := strings.Index(hostPart, "]")
		if end < 0 {
			return false
		}
		host = hostPart[1:end]
		ipv6 = true
		if tail := hostPart[end+1:]; tail != "" {
			if !strings.HasPrefix(tail, ":") {
				return false
			}
			port = tail[1:]
		}
	} else if h, p, ok := strings.Cut(hostPart, ":"); ok {
		host, port = h, p
	}

	if port != "" && !govalidator.IsPort(port) {
		return false
	}
	if port == "" && opts.RequirePort {
		return false
	}
	if strings.Contains(hostPart, ":") && port == "" {
		return false
	}

	if ipv6 {
		if !govalidator.IsIPv6(host) {
			return false
		}
	} else if !govalidator.IsIP(host) && !isFQDN(host, opts) {
		return false
	}

	candidate := s
	if protocol == "" {
		candidate = "http://" + strings.TrimPrefix(s, "//")
	}
	u, err := url.Parse(candidate)
	return err == nil && (u.Host != "" || !opts.RequireHost)
}

func isFQDN(host string, opts URLOptions) bool {
	if host == "" || strings.HasSuffix(host, ".") {
		return false
	}
	if !opts.AllowUnderscores && strings.Contains(host, "_") {
		return false
	}
	labels := strings.Split(host, ".")
	if opts.RequireTLD && (len(labels) < 2 || !tldRegexp.MatchString(labels[len(labels)-1])) {
		return false
	}
	if isASCII(host) {
		return govalidator.IsDNSName(host)
	}
	for _, label := range labels {
		if utf8.RuneCountInString(label) > 63 || !hostLabelRegexp.MatchString(label) {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		// fullwidth forms
		if strings.ContainsFunc(label, func(r rune) bool { return r >= '\uff01' && r <= '\uff5e' }) {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r > unicode.MaxASCII }) < 0
}

func (urlRule) Describe(config any, schema *openapi3.Schema) error {
	opts, err := urlOptions(config)
	if err != nil {
		return err
	}
	if schema.Format == "" {
		schema.Format = "uri"
	}
	if opts.RequireValidProtocol && len(opts.Protocols) > 0 {
		appendDescription(schema, "protocols: "+strings.Join(opts.Protocols, ", "))
	}
	return nil
}

func (urlRule) Message(any) validation.Error {
	return validation.NewError("validation_is_url", "must be a valid URL")
}
