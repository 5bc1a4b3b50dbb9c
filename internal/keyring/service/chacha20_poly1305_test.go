package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/keyring/internal/keyring/domain"
)

func TestChaCha20Poly1305Factory_NewEncryptor(t *testing.T) {
	factory := NewChaCha20Poly1305Factory(domain.NewChaCha20Poly1305Configuration(), nil)

	encryptor, err := factory.NewEncryptor(newKeyMaterial(t, 64))
	require.NoError(t, err)
	defer encryptor.Close()

	plaintext := []byte("tunnel payload")
	aad := []byte("session-1")

	ciphertext, nonce, err := encryptor.Encrypt(plaintext, aad)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		decrypted, err := encryptor.Decrypt(ciphertext, nonce, aad)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("wrong aad fails authentication", func(t *testing.T) {
		_, err := encryptor.Decrypt(ciphertext, nonce, []byte("session-2"))
		assert.Error(t, err)
	})

	t.Run("self test passes", func(t *testing.T) {
		assert.NoError(t, encryptor.SelfTest())
	})
}

func TestChaCha20Poly1305Factory_KeyDerivation(t *testing.T) {
	factory := NewChaCha20Poly1305Factory(domain.NewChaCha20Poly1305Configuration(), nil)

	encryptor, err := factory.NewEncryptor(newKeyMaterial(t, 64))
	require.NoError(t, err)
	defer encryptor.Close()

	inner, ok := encryptor.(*aeadEncryptor)
	require.True(t, ok)
	assert.Len(t, inner.key, chachaKeySizeBits/8)
}
