package service

import (
	"context"

	"github.com/rs/zerolog"

	"ssoverify/internal/domain"
	"ssoverify/internal/port"
)

// VerificationService defines the token verification contract.
type VerificationService interface {
	Verify(ctx context.Context, provider domain.AuthProvider, idToken string) (*domain.VerifiedIdentity, error)
}

type verificationService struct {
	verifiers map[domain.AuthProvider]port.IdentityVerifier
	log       zerolog.Logger
}

// NewVerificationService creates a VerificationService dispatching over the
// given provider verifiers. A provider absent from the map is treated as not
// configured.
func NewVerificationService(verifiers map[domain.AuthProvider]port.IdentityVerifier, log zerolog.Logger) VerificationService {
	return &verificationService{verifiers: verifiers, log: log}
}

// Verify runs the full verification pipeline for one token. It is stateless
// and idempotent per token; a failure is final and never retried here. The
// concrete rejection reason is logged server-side only — callers receive the
// typed error, and the HTTP layer collapses it into a generic message. The
// raw token is never logged.
func (s *verificationService) Verify(ctx context.Context, provider domain.AuthProvider, idToken string) (*domain.VerifiedIdentity, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, domain.ErrProviderNotConfigured
	}

	identity, err := verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Warn().
			Str("provider", string(provider)).
			Err(err).
			Msg("token verification rejected")
		return nil, err
	}

	s.log.Info().
		Str("provider", string(provider)).
		Str("email", identity.Email).
		Msg("token verified successfully")
	return identity, nil
}
