package service

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// SelfTestValidator proves a configuration works before it is trusted: it
// builds an encryptor from a freshly generated throwaway key and drives the
// encrypt/decrypt round trip. Validation is side-effect free on shared state —
// it touches only the given configuration and transient resources, so
// independent configurations can be validated in parallel.
type SelfTestValidator struct {
	logger *slog.Logger
}

// NewSelfTestValidator creates a validator. A nil logger is replaced with a
// discarding one.
func NewSelfTestValidator(logger *slog.Logger) *SelfTestValidator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SelfTestValidator{logger: logger}
}

// Validate builds the factory matching cfg's variant and runs the self test.
// Intended to be called exactly once, at registration time; any error must
// abort registration of the configuration.
func (v *SelfTestValidator) Validate(cfg domain.Configuration) error {
	factory, err := v.factoryFor(cfg)
	if err != nil {
		return err
	}
	return v.ValidateFactory(factory)
}

// ValidateFactory runs the self test against an explicit factory. Split out so
// tests can inject failing factories and observe resource release.
//
// The 512-bit key generated here exists only for the round trip: it is never
// the configuration's persisted master key and is wiped before return. The
// encryptor is a scoped resource — Close runs on every exit path.
func (v *SelfTestValidator) ValidateFactory(factory EncryptorFactory) error {
	keyMaterial := make([]byte, domain.ValidationKeySizeBits/8)
	if _, err := rand.Read(keyMaterial); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSecretGeneration, err)
	}
	defer domain.Zero(keyMaterial)

	encryptor, err := factory.NewEncryptor(keyMaterial)
	if err != nil {
		return err
	}
	defer encryptor.Close()

	if err := encryptor.SelfTest(); err != nil {
		return err
	}

	v.logger.Debug("configuration self test passed")
	return nil
}

// factoryFor maps a configuration variant to its encryptor factory. The set of
// variants is closed; anything else is an unknown kind.
func (v *SelfTestValidator) factoryFor(cfg domain.Configuration) (EncryptorFactory, error) {
	switch c := cfg.(type) {
	case *domain.GCMConfiguration:
		return NewGCMEncryptorFactory(c, v.logger), nil
	case *domain.ChaCha20Poly1305Configuration:
		return NewChaCha20Poly1305Factory(c, v.logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDescriptorKind, cfg.Kind())
	}
}
