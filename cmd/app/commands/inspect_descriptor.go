package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/beevik/etree"

	"github.com/allisson/keyring/internal/keyring/domain"
	"github.com/allisson/keyring/internal/keyring/dto"
	"github.com/allisson/keyring/internal/keyring/usecase"
)

// RunInspectDescriptor loads a descriptor document from file, reconstructs the
// configuration it describes, and prints a summary. The master key material is
// never printed; only its size is reported.
func RunInspectDescriptor(
	ctx context.Context,
	configurationUseCase usecase.ConfigurationUseCase,
	logger *slog.Logger,
	writer IOTuple,
	file, kind string,
) error {
	descriptorKind, err := dto.ParseKind(kind)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read descriptor file: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedDescriptor, err)
	}

	descriptor := domain.NewDescriptor(descriptorKind, doc)

	cfg, secret, err := configurationUseCase.Reconstruct(ctx, descriptor)
	if err != nil {
		return fmt.Errorf("failed to reconstruct descriptor: %w", err)
	}
	defer secret.Release()

	fmt.Fprintf(writer.Writer, "Kind: %s\n", descriptorKind)
	switch c := cfg.(type) {
	case *domain.GCMConfiguration:
		fmt.Fprintf(writer.Writer, "Algorithm: %s\n", c.Algorithm)
		if c.Provider != "" {
			fmt.Fprintf(writer.Writer, "Provider: %s\n", c.Provider)
		}
		fmt.Fprintf(writer.Writer, "Key size: %d bits\n", c.KeySizeBits)
	case *domain.ChaCha20Poly1305Configuration:
		fmt.Fprintf(writer.Writer, "Algorithm: ChaCha20-Poly1305\n")
	}
	fmt.Fprintf(writer.Writer, "Master key: %d bytes\n", secret.Len())

	logger.Info("descriptor inspected",
		slog.String("file", file),
		slog.String("kind", kind),
	)

	return nil
}
