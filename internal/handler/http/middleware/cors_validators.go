package middleware

import (
	"strings"
)

// OriginValidator decides whether an Origin header value may receive CORS headers.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// WhitelistValidator implements exact-match origin validation.
// Origins are compared case-insensitively with trailing slashes removed.
// A "*" entry allows every origin.
type WhitelistValidator struct {
	allowedOrigins []string
	any            bool
}

// NewWhitelistValidator creates a WhitelistValidator from the given origins.
// Empty entries are ignored.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	v := &WhitelistValidator{allowedOrigins: make([]string, 0, len(origins))}
	for _, origin := range origins {
		origin = normalizeOrigin(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			v.any = true
			continue
		}
		v.allowedOrigins = append(v.allowedOrigins, origin)
	}
	return v
}

// IsAllowed checks if the given origin is in the whitelist.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	if v.any {
		return true
	}
	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// AllowsAny reports whether the wildcard was configured.
func (v *WhitelistValidator) AllowsAny() bool { return v.any }

// GetAllowedOrigins returns a copy of the normalized explicit origins.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
