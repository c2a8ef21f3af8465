package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ssoverify/internal/domain"
)

// MockVerificationService is a mock implementation of service.VerificationService.
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Verify(ctx context.Context, provider domain.AuthProvider, idToken string) (*domain.VerifiedIdentity, error) {
	args := m.Called(ctx, provider, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifiedIdentity), args.Error(1)
}
