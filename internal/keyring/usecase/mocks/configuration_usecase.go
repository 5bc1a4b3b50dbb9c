// Package mocks provides mock implementations for testing commands.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// MockConfigurationUseCase is a mock implementation of ConfigurationUseCase for testing.
type MockConfigurationUseCase struct {
	mock.Mock
}

// Register mocks the Register method of ConfigurationUseCase.
func (m *MockConfigurationUseCase) Register(ctx context.Context, cfg domain.Configuration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// GenerateDescriptor mocks the GenerateDescriptor method of ConfigurationUseCase.
func (m *MockConfigurationUseCase) GenerateDescriptor(
	ctx context.Context,
	cfg domain.Configuration,
) (*domain.Descriptor, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Descriptor), args.Error(1)
}

// GenerateDescriptorFromSecret mocks the GenerateDescriptorFromSecret method of ConfigurationUseCase.
func (m *MockConfigurationUseCase) GenerateDescriptorFromSecret(
	ctx context.Context,
	cfg domain.Configuration,
	secret *domain.Secret,
) (*domain.Descriptor, error) {
	args := m.Called(ctx, cfg, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Descriptor), args.Error(1)
}

// Reconstruct mocks the Reconstruct method of ConfigurationUseCase.
func (m *MockConfigurationUseCase) Reconstruct(
	ctx context.Context,
	d *domain.Descriptor,
) (domain.Configuration, *domain.Secret, error) {
	args := m.Called(ctx, d)
	var cfg domain.Configuration
	if args.Get(0) != nil {
		cfg = args.Get(0).(domain.Configuration)
	}
	var secret *domain.Secret
	if args.Get(1) != nil {
		secret = args.Get(1).(*domain.Secret)
	}
	return cfg, secret, args.Error(2)
}
