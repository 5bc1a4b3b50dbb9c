package service

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/allisson/keyring/internal/keyring/domain"
)

const chachaKeyDerivationInfo = "keyring/chacha20-poly1305/working-key"

// chachaKeySizeBits is fixed by the cipher.
const chachaKeySizeBits = chacha20poly1305.KeySize * 8

// ChaCha20Poly1305Factory produces ChaCha20-Poly1305 encryptors. The cipher
// takes a fixed 256-bit key, derived from the caller's key material the same
// way the GCM factory derives its working key.
type ChaCha20Poly1305Factory struct {
	config *domain.ChaCha20Poly1305Configuration
	logger *slog.Logger
}

// NewChaCha20Poly1305Factory creates a factory bound to cfg. A nil logger is
// replaced with a discarding one.
func NewChaCha20Poly1305Factory(
	cfg *domain.ChaCha20Poly1305Configuration,
	logger *slog.Logger,
) *ChaCha20Poly1305Factory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ChaCha20Poly1305Factory{
		config: cfg,
		logger: logger,
	}
}

// NewEncryptor derives a 256-bit working key from keyMaterial and returns a
// disposable ChaCha20-Poly1305 encryptor. The caller must Close it.
func (f *ChaCha20Poly1305Factory) NewEncryptor(keyMaterial []byte) (Encryptor, error) {
	key, err := deriveKey(keyMaterial, chacha20poly1305.KeySize, chachaKeyDerivationInfo)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		domain.Zero(key)
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	f.logger.Debug("chacha20-poly1305 encryptor created")

	return &aeadEncryptor{aead: aead, key: key}, nil
}
