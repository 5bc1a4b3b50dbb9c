package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/allisson/keyring/internal/keyring/domain"
	"github.com/allisson/keyring/internal/keyring/dto"
	"github.com/allisson/keyring/internal/keyring/usecase"
	"github.com/allisson/keyring/internal/validation"
)

// RunCreateDescriptor validates the requested configuration, exports it as a
// descriptor document, and writes the document to output (or stdout when
// output is empty). When the use case carries a KMS protector the master key
// in the written document is KMS-wrapped.
//
// A base64-encoded secret supplies the master key material; without one a
// fresh 256-bit key is generated.
func RunCreateDescriptor(
	ctx context.Context,
	configurationUseCase usecase.ConfigurationUseCase,
	logger *slog.Logger,
	writer IOTuple,
	kind, algorithm, provider string,
	keySizeBits int,
	secret, output string,
) error {
	req := &dto.DescriptorRequest{
		Kind:        kind,
		Algorithm:   algorithm,
		Provider:    provider,
		KeySizeBits: keySizeBits,
		Secret:      secret,
	}
	if err := validation.WrapValidationError(req.Validate()); err != nil {
		return err
	}

	cfg, err := req.ToConfiguration()
	if err != nil {
		return err
	}

	material, err := req.SecretBytes()
	if err != nil {
		return err
	}

	var descriptor *domain.Descriptor
	if material != nil {
		descriptor, err = configurationUseCase.GenerateDescriptorFromSecret(ctx, cfg, domain.NewSecret(material))
	} else {
		descriptor, err = configurationUseCase.GenerateDescriptor(ctx, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to generate descriptor: %w", err)
	}
	defer releaseMasterKey(cfg)

	xml, err := descriptor.XML()
	if err != nil {
		return fmt.Errorf("failed to render descriptor: %w", err)
	}

	if output == "" {
		fmt.Fprintln(writer.Writer, xml)
	} else {
		if err := os.WriteFile(output, []byte(xml+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write descriptor to %s: %w", output, err)
		}
	}

	logger.Info("descriptor created",
		slog.String("id", descriptor.ID.String()),
		slog.String("kind", string(descriptor.Kind)),
	)

	return nil
}

// releaseMasterKey wipes the configuration's master key after the descriptor
// has been written.
func releaseMasterKey(cfg domain.Configuration) {
	if secret := cfg.MasterKey(); secret != nil {
		secret.Release()
	}
}
