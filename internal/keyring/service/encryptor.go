package service

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// selfTestPlaintext and selfTestAAD are the fixed payload for the encrypt/
// decrypt round trip. The payload carries no secrets; only equality matters.
var (
	selfTestPlaintext = []byte("keyring encryptor self test payload")
	selfTestAAD       = []byte("keyring-self-test")
)

// aeadEncryptor implements Encryptor on top of a cipher.AEAD. It owns the
// derived key bytes until Close wipes them.
type aeadEncryptor struct {
	aead   cipher.AEAD
	key    []byte
	closed bool
}

// Encrypt encrypts plaintext with a randomly generated nonce and optional AAD.
// The returned ciphertext includes the authentication tag.
func (e *aeadEncryptor) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = e.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using the provided nonce and AAD, verifying the
// authentication tag before returning plaintext.
func (e *aeadEncryptor) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// SelfTest runs the encrypt-then-decrypt round trip with the fixed payload.
func (e *aeadEncryptor) SelfTest() error {
	ciphertext, nonce, err := e.Encrypt(selfTestPlaintext, selfTestAAD)
	if err != nil {
		return fmt.Errorf("%w: encrypt: %v", domain.ErrSelfTestFailed, err)
	}

	roundTrip, err := e.Decrypt(ciphertext, nonce, selfTestAAD)
	if err != nil {
		return fmt.Errorf("%w: decrypt: %v", domain.ErrSelfTestFailed, err)
	}

	if !bytes.Equal(roundTrip, selfTestPlaintext) {
		return fmt.Errorf("%w: plaintext mismatch", domain.ErrSelfTestFailed)
	}

	return nil
}

// Close wipes the derived key. Idempotent.
func (e *aeadEncryptor) Close() {
	if e.closed {
		return
	}
	domain.Zero(e.key)
	e.key = nil
	e.closed = true
}
