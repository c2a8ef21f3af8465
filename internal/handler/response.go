package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ssoverify/internal/domain"
)

// The rejection body is identical for every trust failure. Which check failed
// is logged server-side only; echoing it would hand an attacker probing forged
// tokens a rejection-reason oracle.
const genericRejection = "invalid or expired token"

// RespondVerified sends the 200 success body for a verified token.
func RespondVerified(c *gin.Context, identity *domain.VerifiedIdentity) {
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": identity})
}

// RespondVerifyError maps a verification error to the wire contract:
// 401 for every rejected token, 400 for missing server configuration,
// 503 when provider key material is unreachable, 500 otherwise.
func RespondVerifyError(c *gin.Context, err error, configMsg string) {
	switch {
	case errors.Is(err, domain.ErrProviderNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": configMsg})
	case errors.Is(err, domain.ErrKeyFetch):
		c.JSON(http.StatusServiceUnavailable, gin.H{"valid": false, "error": "identity provider keys unavailable"})
	case isRejection(err):
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": genericRejection})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": "token verification failed"})
	}
}

func isRejection(err error) bool {
	for _, rejection := range []error{
		domain.ErrMalformedToken,
		domain.ErrSignatureInvalid,
		domain.ErrIssuerMismatch,
		domain.ErrAudienceMismatch,
		domain.ErrTenantMismatch,
		domain.ErrTokenExpired,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}
