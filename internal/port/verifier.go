package port

import (
	"context"

	"ssoverify/internal/domain"
)

// IdentityVerifier validates an ID token from an identity provider and, on
// success, returns the normalized identity it asserts. Implementations must
// be stateless and safe for concurrent use; a failure is final for that
// token instance (no internal retries).
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error)
	Provider() domain.AuthProvider
}
