package token_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"ssoverify/internal/domain"
	"ssoverify/internal/token"
)

// unsignedToken builds a structurally valid compact token with an empty
// signature segment. Parsing must succeed: extraction makes no trust decision.
func unsignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tok.Header["kid"] = "extract-test-key"
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)
	return raw
}

func TestParse_ValidToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := unsignedToken(t, jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"aud":            "client-A",
		"sub":            "user-1",
		"email":          "a@x.com",
		"email_verified": true,
		"exp":            exp.Unix(),
	})

	claims, err := token.Parse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "https://accounts.google.com", claims.String("iss"))
	assert.Equal(t, "client-A", claims.String("aud"))
	assert.Equal(t, "a@x.com", claims.String("email"))
	assert.True(t, claims.Bool("email_verified"))
	assert.Equal(t, "extract-test-key", claims.KeyID())

	got, ok := claims.ExpiresAt()
	assert.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestParse_WrongSegmentCount(t *testing.T) {
	_, err := token.Parse("only-one-segment")
	assert.ErrorIs(t, err, domain.ErrMalformedToken)
}

func TestParse_InvalidEncoding(t *testing.T) {
	_, err := token.Parse("!!!.###.$$$")
	assert.ErrorIs(t, err, domain.ErrMalformedToken)
}

func TestParse_InvalidPayloadJSON(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`not json`))
	_, err := token.Parse(header + "." + payload + ".sig")
	assert.ErrorIs(t, err, domain.ErrMalformedToken)
}

func TestClaimSet_MissingClaimsNormalizeToZero(t *testing.T) {
	claims, err := token.Parse(unsignedToken(t, jwt.MapClaims{"sub": "user-1"}))
	assert.NoError(t, err)

	assert.Equal(t, "", claims.String("email"))
	assert.False(t, claims.Bool("email_verified"))

	_, ok := claims.ExpiresAt()
	assert.False(t, ok)
}

func TestClaimSet_BoolAcceptsStringForm(t *testing.T) {
	claims, err := token.Parse(unsignedToken(t, jwt.MapClaims{"email_verified": "true"}))
	assert.NoError(t, err)
	assert.True(t, claims.Bool("email_verified"))

	claims, err = token.Parse(unsignedToken(t, jwt.MapClaims{"email_verified": "false"}))
	assert.NoError(t, err)
	assert.False(t, claims.Bool("email_verified"))
}
