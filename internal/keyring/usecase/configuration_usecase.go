// Package usecase implements business logic orchestration for configuration
// and descriptor operations.
//
// Use cases coordinate between the self-test validator, the descriptor
// exporter, and the optional KMS protector. A configuration is always
// validated before a descriptor is generated from it; a descriptor is always
// unprotected before its configuration is reconstructed.
package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/keyring/internal/keyring/domain"
	"github.com/allisson/keyring/internal/keyring/service"
)

// configurationUseCase implements the ConfigurationUseCase interface.
type configurationUseCase struct {
	validator ConfigurationValidator
	exporter  DescriptorWriter
	protector DescriptorProtector
	logger    *slog.Logger
}

// NewConfigurationUseCase creates a use case. protector may be nil, in which
// case descriptors are generated and reconstructed without KMS wrapping.
func NewConfigurationUseCase(
	validator ConfigurationValidator,
	exporter DescriptorWriter,
	protector DescriptorProtector,
	logger *slog.Logger,
) ConfigurationUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &configurationUseCase{
		validator: validator,
		exporter:  exporter,
		protector: protector,
		logger:    logger,
	}
}

// Register validates the configuration with the self-test round trip.
func (c *configurationUseCase) Register(ctx context.Context, cfg domain.Configuration) error {
	if err := c.validator.Validate(cfg); err != nil {
		return err
	}

	c.logger.Info("configuration registered", slog.String("kind", string(cfg.Kind())))
	return nil
}

// GenerateDescriptor registers cfg and exports it with a fresh master key.
func (c *configurationUseCase) GenerateDescriptor(
	ctx context.Context,
	cfg domain.Configuration,
) (*domain.Descriptor, error) {
	if err := c.Register(ctx, cfg); err != nil {
		return nil, err
	}

	descriptor, err := c.exporter.Export(cfg)
	if err != nil {
		return nil, err
	}

	return c.protect(ctx, descriptor)
}

// GenerateDescriptorFromSecret registers cfg and exports it with the given
// master key material.
func (c *configurationUseCase) GenerateDescriptorFromSecret(
	ctx context.Context,
	cfg domain.Configuration,
	secret *domain.Secret,
) (*domain.Descriptor, error) {
	if err := c.Register(ctx, cfg); err != nil {
		return nil, err
	}

	descriptor, err := c.exporter.ExportSecret(cfg, secret)
	if err != nil {
		return nil, err
	}

	return c.protect(ctx, descriptor)
}

// Reconstruct rebuilds the configuration and master key from a descriptor,
// unwrapping the master key first when it is protected.
func (c *configurationUseCase) Reconstruct(
	ctx context.Context,
	d *domain.Descriptor,
) (domain.Configuration, *domain.Secret, error) {
	if service.IsProtected(d) {
		if c.protector == nil {
			return nil, nil, domain.ErrDescriptorProtected
		}
		unprotected, err := c.protector.Unprotect(ctx, d)
		if err != nil {
			return nil, nil, err
		}
		d = unprotected
	}

	return service.Reconstruct(d)
}

// protect wraps the descriptor's master key when a protector is configured.
func (c *configurationUseCase) protect(
	ctx context.Context,
	descriptor *domain.Descriptor,
) (*domain.Descriptor, error) {
	if c.protector == nil {
		return descriptor, nil
	}
	return c.protector.Protect(ctx, descriptor)
}
