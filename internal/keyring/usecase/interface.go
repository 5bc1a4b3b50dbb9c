package usecase

import (
	"context"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// ConfigurationValidator proves a configuration works before it is trusted.
type ConfigurationValidator interface {
	Validate(cfg domain.Configuration) error
}

// DescriptorWriter turns configurations into descriptor documents.
type DescriptorWriter interface {
	Export(cfg domain.Configuration) (*domain.Descriptor, error)
	ExportSecret(cfg domain.Configuration, secret *domain.Secret) (*domain.Descriptor, error)
}

// DescriptorProtector wraps and unwraps descriptor master keys through a KMS
// keeper.
type DescriptorProtector interface {
	Protect(ctx context.Context, d *domain.Descriptor) (*domain.Descriptor, error)
	Unprotect(ctx context.Context, d *domain.Descriptor) (*domain.Descriptor, error)
}

// ConfigurationUseCase defines the interface for configuration and descriptor
// lifecycle operations.
type ConfigurationUseCase interface {
	// Register validates a configuration with the self-test round trip.
	// A configuration must pass registration before descriptors are
	// generated from it.
	Register(ctx context.Context, cfg domain.Configuration) error

	// GenerateDescriptor registers cfg, generates a fresh master key, and
	// exports the descriptor. When a protector is configured the returned
	// descriptor carries a KMS-wrapped master key.
	GenerateDescriptor(ctx context.Context, cfg domain.Configuration) (*domain.Descriptor, error)

	// GenerateDescriptorFromSecret is GenerateDescriptor with caller-provided
	// master key material. The use case takes ownership of the secret.
	GenerateDescriptorFromSecret(
		ctx context.Context,
		cfg domain.Configuration,
		secret *domain.Secret,
	) (*domain.Descriptor, error)

	// Reconstruct rebuilds a configuration and its master key from a
	// descriptor, unwrapping the master key first when it is KMS-protected.
	// The caller owns the returned secret.
	Reconstruct(ctx context.Context, d *domain.Descriptor) (domain.Configuration, *domain.Secret, error)
}
