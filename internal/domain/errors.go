package domain

import "errors"

var (
	ErrMalformedToken        = errors.New("token is structurally malformed")
	ErrSignatureInvalid      = errors.New("token signature could not be verified")
	ErrIssuerMismatch        = errors.New("token issuer does not match provider")
	ErrKeyFetch              = errors.New("provider signing keys unreachable")
	ErrAudienceMismatch      = errors.New("token audience does not match client id")
	ErrTenantMismatch        = errors.New("token tenant does not match configured tenant")
	ErrTokenExpired          = errors.New("token has expired")
	ErrProviderNotConfigured = errors.New("provider is not configured")
)
