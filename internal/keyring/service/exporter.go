package service

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/beevik/etree"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// Descriptor document schema. The root carries a comment naming the algorithm
// family and mode, an encryption element with the algorithm parameters, and
// the masterKey element serialized by the secret itself.
const (
	descriptorTag = "descriptor"
	encryptionTag = "encryption"

	algorithmAttr = "algorithm"
	keyLengthAttr = "keyLength"
	providerAttr  = "provider"

	// kmsAttr marks a masterKey element whose content has been wrapped by a
	// KMS keeper; its value is the keeper's key URI.
	kmsAttr = "kms"

	gcmAnnotation    = "Galois/Counter Mode via native provider"
	chachaAnnotation = "ChaCha20-Poly1305 AEAD"

	chachaAlgorithmName = "ChaCha20-Poly1305"
)

// DescriptorExporter turns a configuration plus a master key into a persisted
// descriptor document. Each export call produces one independent document; the
// document shares no mutable state with the configuration after return.
type DescriptorExporter struct {
	logger *slog.Logger
}

// NewDescriptorExporter creates an exporter. A nil logger is replaced with a
// discarding one.
func NewDescriptorExporter(logger *slog.Logger) *DescriptorExporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DescriptorExporter{logger: logger}
}

// Export generates a fresh 256-bit master key and delegates to ExportSecret.
func (e *DescriptorExporter) Export(cfg domain.Configuration) (*domain.Descriptor, error) {
	secret, err := domain.GenerateSecret(domain.MasterKeySizeBits / 8)
	if err != nil {
		return nil, err
	}
	return e.ExportSecret(cfg, secret)
}

// ExportSecret assigns secret to the configuration's master-key slot
// (overwriting any prior value — the slot's single-writer precondition
// applies) and builds the descriptor document. The returned descriptor is a
// snapshot: mutating cfg afterwards does not affect it.
func (e *DescriptorExporter) ExportSecret(
	cfg domain.Configuration,
	secret *domain.Secret,
) (*domain.Descriptor, error) {
	var descriptor *domain.Descriptor

	switch c := cfg.(type) {
	case *domain.GCMConfiguration:
		c.SetMasterKey(secret)
		descriptor = exportGCM(c)
	case *domain.ChaCha20Poly1305Configuration:
		c.SetMasterKey(secret)
		descriptor = exportChaCha20Poly1305(c)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDescriptorKind, cfg.Kind())
	}

	e.logger.Debug("descriptor exported",
		slog.String("id", descriptor.ID.String()),
		slog.String("kind", string(descriptor.Kind)),
	)

	return descriptor, nil
}

func exportGCM(cfg *domain.GCMConfiguration) *domain.Descriptor {
	doc := etree.NewDocument()
	root := doc.CreateElement(descriptorTag)
	root.CreateComment(gcmAnnotation)

	enc := root.CreateElement(encryptionTag)
	enc.CreateAttr(algorithmAttr, cfg.Algorithm)
	enc.CreateAttr(keyLengthAttr, strconv.Itoa(cfg.KeySizeBits))
	// Provider is omitted entirely when unset, never emitted empty.
	if cfg.Provider != "" {
		enc.CreateAttr(providerAttr, cfg.Provider)
	}

	root.AddChild(cfg.MasterKey().ToElement())

	return domain.NewDescriptor(domain.KindGCM, doc)
}

func exportChaCha20Poly1305(cfg *domain.ChaCha20Poly1305Configuration) *domain.Descriptor {
	doc := etree.NewDocument()
	root := doc.CreateElement(descriptorTag)
	root.CreateComment(chachaAnnotation)

	enc := root.CreateElement(encryptionTag)
	enc.CreateAttr(algorithmAttr, chachaAlgorithmName)
	enc.CreateAttr(keyLengthAttr, strconv.Itoa(chachaKeySizeBits))

	root.AddChild(cfg.MasterKey().ToElement())

	return domain.NewDescriptor(domain.KindChaCha20Poly1305, doc)
}
