package usecase

import (
	"context"
	"time"

	"github.com/allisson/keyring/internal/keyring/domain"
	"github.com/allisson/keyring/internal/metrics"
)

// configurationUseCaseWithMetrics decorates ConfigurationUseCase with metrics instrumentation.
type configurationUseCaseWithMetrics struct {
	next    ConfigurationUseCase
	metrics metrics.BusinessMetrics
}

// NewConfigurationUseCaseWithMetrics wraps a ConfigurationUseCase with metrics recording.
func NewConfigurationUseCaseWithMetrics(
	useCase ConfigurationUseCase,
	m metrics.BusinessMetrics,
) ConfigurationUseCase {
	return &configurationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for configuration registration operations.
func (c *configurationUseCaseWithMetrics) Register(ctx context.Context, cfg domain.Configuration) error {
	start := time.Now()
	err := c.next.Register(ctx, cfg)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "keyring", "configuration_register", status)
	c.metrics.RecordDuration(ctx, "keyring", "configuration_register", time.Since(start), status)

	return err
}

// GenerateDescriptor records metrics for descriptor generation operations.
func (c *configurationUseCaseWithMetrics) GenerateDescriptor(
	ctx context.Context,
	cfg domain.Configuration,
) (*domain.Descriptor, error) {
	start := time.Now()
	descriptor, err := c.next.GenerateDescriptor(ctx, cfg)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "keyring", "descriptor_generate", status)
	c.metrics.RecordDuration(ctx, "keyring", "descriptor_generate", time.Since(start), status)

	return descriptor, err
}

// GenerateDescriptorFromSecret records metrics for descriptor generation with
// caller-provided key material.
func (c *configurationUseCaseWithMetrics) GenerateDescriptorFromSecret(
	ctx context.Context,
	cfg domain.Configuration,
	secret *domain.Secret,
) (*domain.Descriptor, error) {
	start := time.Now()
	descriptor, err := c.next.GenerateDescriptorFromSecret(ctx, cfg, secret)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "keyring", "descriptor_generate_from_secret", status)
	c.metrics.RecordDuration(ctx, "keyring", "descriptor_generate_from_secret", time.Since(start), status)

	return descriptor, err
}

// Reconstruct records metrics for descriptor reconstruction operations.
func (c *configurationUseCaseWithMetrics) Reconstruct(
	ctx context.Context,
	d *domain.Descriptor,
) (domain.Configuration, *domain.Secret, error) {
	start := time.Now()
	cfg, secret, err := c.next.Reconstruct(ctx, d)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "keyring", "descriptor_reconstruct", status)
	c.metrics.RecordDuration(ctx, "keyring", "descriptor_reconstruct", time.Since(start), status)

	return cfg, secret, err
}
