// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

type directive struct {
	name    string
	sources []string
}

// Policy is an ordered list of CSP directives. The zero value is an empty
// policy. Policies are values; every method returns a modified copy.
type Policy struct {
	directives []directive
}

// With sets a directive, replacing an earlier one with the same name.
// Directives are rendered in the order they were first set.
func (p Policy) With(name string, sources ...string) Policy {
	out := Policy{directives: make([]directive, 0, len(p.directives)+1)}
	replaced := false
	for _, d := range p.directives {
		if d.name == name {
			d = directive{name: name, sources: sources}
			replaced = true
		}
		out.directives = append(out.directives, d)
	}
	if !replaced {
		out.directives = append(out.directives, directive{name: name, sources: sources})
	}
	return out
}

// String renders the header value, e.g. "default-src 'none'; frame-ancestors 'none'".
// A directive without sources is rendered bare (upgrade-insecure-requests).
func (p Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, d := range p.directives {
		if len(d.sources) == 0 {
			parts = append(parts, d.name)
			continue
		}
		parts = append(parts, d.name+" "+strings.Join(d.sources, " "))
	}
	return strings.Join(parts, "; ")
}

// IsEmpty reports whether the policy has no directives.
func (p Policy) IsEmpty() bool { return len(p.directives) == 0 }

// HeaderName returns the header to send the policy in.
func HeaderName(reportOnly bool) string {
	if reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// StrictPolicy is for JSON endpoints: nothing may be loaded or framed.
func StrictPolicy() Policy {
	return Policy{}.
		With("default-src", "'none'").
		With("frame-ancestors", "'none'").
		With("base-uri", "'none'").
		With("form-action", "'none'")
}

// SwaggerUIPolicy allows what the bundled Swagger UI needs: its inline
// bootstrap script and styles, data: images and fetching doc.json.
func SwaggerUIPolicy() Policy {
	return Policy{}.
		With("default-src", "'self'").
		With("script-src", "'self'", "'unsafe-inline'").
		With("style-src", "'self'", "'unsafe-inline'").
		With("img-src", "'self'", "data:").
		With("font-src", "'self'", "data:").
		With("connect-src", "'self'").
		With("frame-ancestors", "'none'").
		With("base-uri", "'self'").
		With("form-action", "'self'").
		With("object-src", "'none'")
}
