package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/hkdf"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// DefaultProviderName is the provider the factory resolves an unset provider
// to: the Go standard library crypto implementation. Platform-native providers
// would register alongside it.
const DefaultProviderName = "go-crypto"

// gcmKeyDerivationInfo binds derived keys to this factory's purpose so the
// same key material derives different keys elsewhere.
const gcmKeyDerivationInfo = "keyring/gcm/working-key"

// blockCipherSpec describes a block cipher the factory knows how to build.
// The block size is declared up front so incompatible ciphers are rejected
// before any key material is touched.
type blockCipherSpec struct {
	newCipher     func(key []byte) (cipher.Block, error)
	blockSizeBits int
}

// blockCiphers is the closed table of recognized algorithm identifiers.
// 3DES is recognized but its 64-bit block cannot run in GCM, so choosing it
// fails with ErrBlockSizeMismatch rather than ErrUnsupportedAlgorithm.
var blockCiphers = map[string]blockCipherSpec{
	"AES":  {newCipher: aes.NewCipher, blockSizeBits: 128},
	"3DES": {newCipher: des.NewTripleDESCipher, blockSizeBits: 64},
}

// providerNames is the closed set of recognized provider names. The empty
// string aliases the default provider.
var providerNames = map[string]struct{}{
	"":                  {},
	DefaultProviderName: {},
}

// GCMEncryptorFactory produces GCM encryptors for one configuration. Every
// NewEncryptor call HKDF-derives a working key of the configured size from the
// caller's key material, so a 512-bit validation key and a 256-bit master key
// both feed any configured key size.
type GCMEncryptorFactory struct {
	config *domain.GCMConfiguration
	logger *slog.Logger
}

// NewGCMEncryptorFactory creates a factory bound to cfg. A nil logger is
// replaced with a discarding one; there is no hidden process-wide default.
func NewGCMEncryptorFactory(cfg *domain.GCMConfiguration, logger *slog.Logger) *GCMEncryptorFactory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GCMEncryptorFactory{
		config: cfg,
		logger: logger,
	}
}

// NewEncryptor checks the configuration against the factory's closed algorithm
// and provider tables, derives a working key from keyMaterial, and returns a
// disposable GCM encryptor. The caller owns the encryptor and must Close it.
//
// Failure modes, all fatal: ErrUnsupportedAlgorithm, ErrUnsupportedProvider,
// ErrKeySizeTooSmall (< 128 bits), ErrBlockSizeMismatch (block size of the
// chosen cipher is not 128 bits).
func (f *GCMEncryptorFactory) NewEncryptor(keyMaterial []byte) (Encryptor, error) {
	cfg := f.config

	spec, ok := blockCiphers[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	if _, ok := providerNames[cfg.Provider]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, cfg.Provider)
	}

	if cfg.KeySizeBits < domain.MinKeySizeBits {
		return nil, fmt.Errorf(
			"%w: %d bits (minimum %d)",
			domain.ErrKeySizeTooSmall,
			cfg.KeySizeBits,
			domain.MinKeySizeBits,
		)
	}

	if spec.blockSizeBits != domain.BlockSizeBits {
		return nil, fmt.Errorf(
			"%w: %s has a %d-bit block, GCM requires %d",
			domain.ErrBlockSizeMismatch,
			cfg.Algorithm,
			spec.blockSizeBits,
			domain.BlockSizeBits,
		)
	}

	key, err := deriveKey(keyMaterial, cfg.KeySizeBits/8, gcmKeyDerivationInfo)
	if err != nil {
		return nil, err
	}

	block, err := spec.newCipher(key)
	if err != nil {
		domain.Zero(key)
		return nil, fmt.Errorf("failed to create %s cipher with a %d-bit key: %w", cfg.Algorithm, cfg.KeySizeBits, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		domain.Zero(key)
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	f.logger.Debug("gcm encryptor created",
		slog.String("algorithm", cfg.Algorithm),
		slog.String("provider", resolveProvider(cfg.Provider)),
		slog.Int("key_size_bits", cfg.KeySizeBits),
	)

	return &aeadEncryptor{aead: aead, key: key}, nil
}

// deriveKey expands keyMaterial into length bytes with HKDF-SHA256.
func deriveKey(keyMaterial []byte, length int, info string) ([]byte, error) {
	reader := hkdf.New(sha256.New, keyMaterial, nil, []byte(info))
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive working key: %w", err)
	}
	return key, nil
}

// resolveProvider maps the empty provider to the default provider name.
func resolveProvider(provider string) string {
	if provider == "" {
		return DefaultProviderName
	}
	return provider
}
