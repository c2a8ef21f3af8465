package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ssoverify/internal/domain"
)

// ClaimSet is the decoded payload of a compact token. Decoding is purely
// structural: a syntactically valid but forged token still parses. Nothing
// read from a ClaimSet carries trust until the signature has been verified.
type ClaimSet struct {
	claims jwt.MapClaims
	kid    string
}

// Parse decodes a compact token into a ClaimSet without verifying anything.
// Structural failures (wrong segment count, bad encoding, invalid payload)
// return domain.ErrMalformedToken.
func Parse(raw string) (*ClaimSet, error) {
	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrMalformedToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrMalformedToken
	}

	kid, _ := tok.Header["kid"].(string)
	return &ClaimSet{claims: claims, kid: kid}, nil
}

// KeyID returns the signing key identifier from the token header, or "".
func (c *ClaimSet) KeyID() string {
	return c.kid
}

// String returns the named claim as a string, or "" if absent or not a string.
func (c *ClaimSet) String(name string) string {
	v, _ := c.claims[name].(string)
	return v
}

// Bool returns the named claim as a bool. Both JSON booleans and the string
// forms "true"/"false" are accepted; Google serializes email_verified either
// way depending on the endpoint.
func (c *ClaimSet) Bool(name string) bool {
	switch v := c.claims[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// ExpiresAt returns the expiration timestamp and whether the claim is present.
func (c *ClaimSet) ExpiresAt() (time.Time, bool) {
	exp, err := c.claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
