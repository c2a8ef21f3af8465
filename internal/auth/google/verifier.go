package google

import (
	"context"

	"ssoverify/internal/auth/keyset"
	"ssoverify/internal/auth/policy"
	"ssoverify/internal/domain"
	"ssoverify/internal/port"
	"ssoverify/internal/token"
)

// Issuer values Google uses for ID tokens. Both forms are in the wild.
var issuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// Verifier validates Google ID tokens against Google's published signing keys.
type Verifier struct {
	clientID string
	keys     *keyset.Cache
}

// NewVerifier creates a Google ID token verifier. keys must be a cache over
// Google's JWKS endpoint.
func NewVerifier(clientID string, keys *keyset.Cache) *Verifier {
	return &Verifier{clientID: clientID, keys: keys}
}

func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error) {
	claims, err := token.Parse(idToken)
	if err != nil {
		return nil, err
	}

	// Signature first: no claim is trusted before this point.
	if err := v.keys.VerifySignature(ctx, idToken, claims.KeyID()); err != nil {
		return nil, err
	}

	if !issuers[claims.String("iss")] {
		return nil, domain.ErrIssuerMismatch
	}

	if err := policy.Audience(claims.String("aud"), v.clientID); err != nil {
		return nil, err
	}
	exp, ok := claims.ExpiresAt()
	if err := policy.Expiry(exp, ok); err != nil {
		return nil, err
	}

	return &domain.VerifiedIdentity{
		Email:         claims.String("email"),
		EmailVerified: claims.Bool("email_verified"),
		FirstName:     claims.String("given_name"),
		LastName:      claims.String("family_name"),
		Avatar:        claims.String("picture"),
		SubjectID:     claims.String("sub"),
		Provider:      domain.AuthProviderGoogle,
	}, nil
}

func (v *Verifier) Provider() domain.AuthProvider {
	return domain.AuthProviderGoogle
}

// Compile-time check.
var _ port.IdentityVerifier = (*Verifier)(nil)
