package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ssoverify/internal/domain"
)

// MockIdentityVerifier is a mock implementation of port.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.VerifiedIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifiedIdentity), args.Error(1)
}

func (m *MockIdentityVerifier) Provider() domain.AuthProvider {
	args := m.Called()
	return args.Get(0).(domain.AuthProvider)
}
