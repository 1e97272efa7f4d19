package auth

import (
	"net/http"
	"strings"
)

// Policy decides which role a request requires.
type Policy interface {
	IsExempt(r *http.Request) bool
	RequiredRole(r *http.Request) (Role, bool)
}

// DefaultPolicy guards /api/v1: reads need viewer, writes need operator.
// Health and metrics endpoints are exempt.
type DefaultPolicy struct{}

// NewDefaultPolicy constructs the default policy.
func NewDefaultPolicy() DefaultPolicy {
	return DefaultPolicy{}
}

// IsExempt reports whether the request skips auth entirely.
func (DefaultPolicy) IsExempt(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.URL.Path {
	case "/healthz", "/metrics":
		return true
	}
	return !strings.HasPrefix(r.URL.Path, "/api/v1/")
}

// RequiredRole returns the minimum role for the request.
func (DefaultPolicy) RequiredRole(r *http.Request) (Role, bool) {
	if r == nil {
		return "", false
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return RoleViewer, true
	default:
		return RoleOperator, true
	}
}
