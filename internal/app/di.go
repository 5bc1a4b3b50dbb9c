// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/keyring/internal/config"
	"github.com/allisson/keyring/internal/keyring/service"
	"github.com/allisson/keyring/internal/keyring/usecase"
	"github.com/allisson/keyring/internal/metrics"
	"github.com/allisson/keyring/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	validator *service.SelfTestValidator
	exporter  *service.DescriptorExporter
	kms       service.KMSService
	protector usecase.DescriptorProtector

	// Use Cases
	configurationUseCase usecase.ConfigurationUseCase

	// Initialization flags and mutex for thread-safety
	mu                       sync.Mutex
	loggerInit               sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	validatorInit            sync.Once
	exporterInit             sync.Once
	kmsInit                  sync.Once
	protectorInit            sync.Once
	configurationUseCaseInit sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Validator returns the configuration self-test validator.
func (c *Container) Validator() *service.SelfTestValidator {
	c.validatorInit.Do(func() {
		c.validator = service.NewSelfTestValidator(c.Logger())
	})
	return c.validator
}

// Exporter returns the descriptor exporter.
func (c *Container) Exporter() *service.DescriptorExporter {
	c.exporterInit.Do(func() {
		c.exporter = service.NewDescriptorExporter(c.Logger())
	})
	return c.exporter
}

// KMSService returns the KMS service for opening keepers.
func (c *Container) KMSService() service.KMSService {
	c.kmsInit.Do(func() {
		c.kms = service.NewKMSService()
	})
	return c.kms
}

// Protector returns the descriptor protector, or nil when no KMS key URI is
// configured.
func (c *Container) Protector() (usecase.DescriptorProtector, error) {
	c.protectorInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}
		if err := validation.KeyURI.Validate(c.config.KMSKeyURI); err != nil {
			c.initErrors["protector"] = validation.WrapValidationError(fmt.Errorf("invalid KMS key URI: %w", err))
			return
		}
		c.protector = service.NewKeeperProtector(c.KMSService(), c.config.KMSKeyURI, c.Logger())
	})
	if storedErr, exists := c.initErrors["protector"]; exists {
		return nil, storedErr
	}
	return c.protector, nil
}

// MetricsProvider returns the metrics provider instance.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// A no-op recorder is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
			return
		}

		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// ConfigurationUseCase returns the configuration use case instance.
func (c *Container) ConfigurationUseCase() (usecase.ConfigurationUseCase, error) {
	c.configurationUseCaseInit.Do(func() {
		uc, err := c.initConfigurationUseCase()
		if err != nil {
			c.initErrors["configurationUseCase"] = err
			return
		}
		c.configurationUseCase = uc
	})
	if storedErr, exists := c.initErrors["configurationUseCase"]; exists {
		return nil, storedErr
	}
	return c.configurationUseCase, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initConfigurationUseCase creates the configuration use case with all its dependencies.
func (c *Container) initConfigurationUseCase() (usecase.ConfigurationUseCase, error) {
	protector, err := c.Protector()
	if err != nil {
		return nil, err
	}

	uc := usecase.NewConfigurationUseCase(
		c.Validator(),
		c.Exporter(),
		protector,
		c.Logger(),
	)

	if !c.config.MetricsEnabled {
		return uc, nil
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for configuration use case: %w", err)
	}

	return usecase.NewConfigurationUseCaseWithMetrics(uc, bm), nil
}
