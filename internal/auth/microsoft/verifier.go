package microsoft

import (
	"context"
	"fmt"

	"ssoverify/internal/auth/keyset"
	"ssoverify/internal/auth/policy"
	"ssoverify/internal/domain"
	"ssoverify/internal/port"
	"ssoverify/internal/token"
)

// issuerFormat is the Microsoft identity platform v2.0 issuer. The tenant
// segment comes from the token's own tid claim: a multi-tenant app cannot
// pin a single issuer up front. The templated issuer is then proven by the
// signature check, since only Microsoft holds the keys it publishes for it.
const issuerFormat = "https://login.microsoftonline.com/%s/v2.0"

// Verifier validates Microsoft identity platform ID tokens against the
// platform's published signing keys.
type Verifier struct {
	clientID string
	tenant   string
	keys     *keyset.Cache
}

// NewVerifier creates a Microsoft ID token verifier. tenant is either a
// concrete tenant id or one of the aliases consumers, common, organizations.
// keys must be a cache over the common JWKS endpoint, which serves the keys
// for every tenant.
func NewVerifier(clientID, tenant string, keys *keyset.Cache) *Verifier {
	return &Verifier{clientID: clientID, tenant: tenant, keys: keys}
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

	tid := claims.String("tid")
	if tid == "" || claims.String("iss") != fmt.Sprintf(issuerFormat, tid) {
		return nil, domain.ErrIssuerMismatch
	}

	// Microsoft puts the client id in azp for v2.0 tokens; aud is the fallback.
	audience := claims.String("azp")
	if audience == "" {
		audience = claims.String("aud")
	}
	if err := policy.Audience(audience, v.clientID); err != nil {
		return nil, err
	}
	if err := policy.Tenant(tid, v.tenant); err != nil {
		return nil, err
	}
	exp, ok := claims.ExpiresAt()
	if err := policy.Expiry(exp, ok); err != nil {
		return nil, err
	}

	email := claims.String("email")
	if email == "" {
		email = claims.String("preferred_username")
	}
	subject := claims.String("oid")
	if subject == "" {
		subject = claims.String("sub")
	}

	return &domain.VerifiedIdentity{
		Email: email,
		// Microsoft tokens carry no email_verified equivalent; assumed true.
		EmailVerified: true,
		FirstName:     claims.String("given_name"),
		LastName:      claims.String("family_name"),
		// Profile photos need a Graph API call, which this service does not make.
		Avatar:    "",
		SubjectID: subject,
		Provider:  domain.AuthProviderMicrosoft,
	}, nil
}

func (v *Verifier) Provider() domain.AuthProvider {
	return domain.AuthProviderMicrosoft
}

// Compile-time check.
var _ port.IdentityVerifier = (*Verifier)(nil)
