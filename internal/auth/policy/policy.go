// Package policy holds the provider policy checks that run after a token's
// signature has been verified. Checks are ordered cheapest first and
// short-circuit on the first failure; they must never run on claims from an
// unverified token.
package policy

import (
	"time"

	"ssoverify/internal/domain"
)

// Audience requires the token's intended-recipient claim to equal the
// configured client id exactly.
func Audience(tokenAudience, clientID string) error {
	if tokenAudience != clientID {
		return domain.ErrAudienceMismatch
	}
	return nil
}

// Tenant requires the token's tenant claim to equal the configured tenant,
// unless the configured tenant is a tenant-class alias (consumers, common,
// organizations), which accepts any tenant of that class.
func Tenant(tokenTenant, configured string) error {
	if domain.TenantAliases[configured] {
		return nil
	}
	if tokenTenant != configured {
		return domain.ErrTenantMismatch
	}
	return nil
}

// Expiry requires the expiration timestamp to be strictly in the future.
// A token without an exp claim is treated as expired.
func Expiry(expiresAt time.Time, present bool) error {
	if !present || !expiresAt.After(time.Now()) {
		return domain.ErrTokenExpired
	}
	return nil
}
