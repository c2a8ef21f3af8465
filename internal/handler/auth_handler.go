package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ssoverify/internal/domain"
	"ssoverify/internal/service"
)

// AuthHandler handles the token verification endpoints.
type AuthHandler struct {
	verification service.VerificationService
	log          zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(verification service.VerificationService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{verification: verification, log: log}
}

// VerifyTokenRequest is the request body for both verification endpoints.
type VerifyTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// VerifyGoogleToken handles POST /auth/verify-google-token
func (h *AuthHandler) VerifyGoogleToken(c *gin.Context) {
	h.verifyToken(c, domain.AuthProviderGoogle, "Google Client ID not configured")
}

// VerifyMicrosoftToken handles POST /auth/verify-microsoft-token
func (h *AuthHandler) VerifyMicrosoftToken(c *gin.Context) {
	h.verifyToken(c, domain.AuthProviderMicrosoft, "Microsoft OAuth not configured properly")
}

func (h *AuthHandler) verifyToken(c *gin.Context, provider domain.AuthProvider, configMsg string) {
	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
		return
	}

	identity, err := h.verification.Verify(c.Request.Context(), provider, req.IDToken)
	if err != nil {
		RespondVerifyError(c, err, configMsg)
		return
	}

	RespondVerified(c, identity)
}

// Logout handles POST /auth/logout. Verification is stateless, so there is no
// server-side session to invalidate; this acknowledges the client's sign-out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.log.Info().Msg("user logged out")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Health handles GET /auth/health
func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
