package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/keyring/internal/keyring/dto"
	"github.com/allisson/keyring/internal/keyring/usecase"
	"github.com/allisson/keyring/internal/validation"
)

// RunValidateConfig builds a configuration from the given parameters and runs
// the self-test round trip against it. Exits non-zero when the configuration
// cannot produce a working encryptor.
func RunValidateConfig(
	ctx context.Context,
	configurationUseCase usecase.ConfigurationUseCase,
	logger *slog.Logger,
	writer IOTuple,
	kind, algorithm, provider string,
	keySizeBits int,
) error {
	req := &dto.DescriptorRequest{
		Kind:        kind,
		Algorithm:   algorithm,
		Provider:    provider,
		KeySizeBits: keySizeBits,
	}
	if err := validation.WrapValidationError(req.Validate()); err != nil {
		return err
	}

	cfg, err := req.ToConfiguration()
	if err != nil {
		return err
	}

	if err := configurationUseCase.Register(ctx, cfg); err != nil {
		return fmt.Errorf("configuration failed validation: %w", err)
	}

	logger.Info("configuration validated", slog.String("kind", kind))
	fmt.Fprintf(writer.Writer, "Configuration %s passed the self test\n", kind)

	return nil
}
