// Package service implements the working half of the keyring core: encryptor
// factories bound to algorithm configurations, the self-test validator that
// proves a configuration works before it is trusted, descriptor export, and
// the registry that maps descriptor kinds back to deserializers.
package service

import (
	"context"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// Encryptor is a disposable authenticated-encryption instance produced by a
// factory for one piece of key material.
type Encryptor interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// SelfTest encrypts a payload, decrypts it back, and compares round-trip
	// equality. Returns ErrSelfTestFailed on mismatch.
	SelfTest() error

	// Close wipes the derived key material. Must be called on every exit path;
	// safe to call more than once.
	Close()
}

// EncryptorFactory produces encryptors for a configuration. Each call derives
// a fresh working key from the supplied key material.
type EncryptorFactory interface {
	NewEncryptor(keyMaterial []byte) (Encryptor, error)
}

// KMSService opens KMS keepers for protecting master key material at rest.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider.
	// Returns an error if the key URI is invalid or the connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (domain.KMSKeeper, error)
}
