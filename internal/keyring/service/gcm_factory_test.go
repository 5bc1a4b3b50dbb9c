package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/keyring/internal/keyring/domain"
)

func newKeyMaterial(t *testing.T, byteLength int) []byte {
	t.Helper()
	key := make([]byte, byteLength)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewGCMEncryptorFactory(t *testing.T) {
	cfg := domain.NewGCMConfiguration()
	factory := NewGCMEncryptorFactory(cfg, nil)
	assert.NotNil(t, factory)
	assert.NotNil(t, factory.logger)
}

func TestGCMEncryptorFactory_NewEncryptor(t *testing.T) {
	keyMaterial := newKeyMaterial(t, 64)

	t.Run("default configuration", func(t *testing.T) {
		factory := NewGCMEncryptorFactory(domain.NewGCMConfiguration(), nil)

		encryptor, err := factory.NewEncryptor(keyMaterial)
		require.NoError(t, err)
		defer encryptor.Close()

		assert.NotNil(t, encryptor)
	})

	t.Run("explicit default provider", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.Provider = DefaultProviderName
		factory := NewGCMEncryptorFactory(cfg, nil)

		encryptor, err := factory.NewEncryptor(keyMaterial)
		require.NoError(t, err)
		encryptor.Close()
	})

	t.Run("192-bit key size", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.KeySizeBits = 192
		factory := NewGCMEncryptorFactory(cfg, nil)

		encryptor, err := factory.NewEncryptor(keyMaterial)
		require.NoError(t, err)
		encryptor.Close()
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.Algorithm = "ROT13"
		factory := NewGCMEncryptorFactory(cfg, nil)

		_, err := factory.NewEncryptor(keyMaterial)
		assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
		assert.Contains(t, err.Error(), "ROT13")
	})

	t.Run("unsupported provider", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.Provider = "acme-hsm"
		factory := NewGCMEncryptorFactory(cfg, nil)

		_, err := factory.NewEncryptor(keyMaterial)
		assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
		assert.Contains(t, err.Error(), "acme-hsm")
	})

	t.Run("key size too small", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.KeySizeBits = 64
		factory := NewGCMEncryptorFactory(cfg, nil)

		_, err := factory.NewEncryptor(keyMaterial)
		assert.ErrorIs(t, err, domain.ErrKeySizeTooSmall)
		assert.Contains(t, err.Error(), "64")
	})

	t.Run("block size mismatch", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.Algorithm = "3DES"
		cfg.KeySizeBits = 192
		factory := NewGCMEncryptorFactory(cfg, nil)

		_, err := factory.NewEncryptor(keyMaterial)
		assert.ErrorIs(t, err, domain.ErrBlockSizeMismatch)
		assert.Contains(t, err.Error(), "3DES")
	})

	t.Run("invalid derived key size for AES", func(t *testing.T) {
		cfg := domain.NewGCMConfiguration()
		cfg.KeySizeBits = 136
		factory := NewGCMEncryptorFactory(cfg, nil)

		_, err := factory.NewEncryptor(keyMaterial)
		assert.Error(t, err)
	})
}

func TestGCMEncryptor_EncryptDecrypt(t *testing.T) {
	factory := NewGCMEncryptorFactory(domain.NewGCMConfiguration(), nil)
	encryptor, err := factory.NewEncryptor(newKeyMaterial(t, 64))
	require.NoError(t, err)
	defer encryptor.Close()

	plaintext := []byte("secret message")
	aad := []byte("context")

	ciphertext, nonce, err := encryptor.Encrypt(plaintext, aad)
	require.NoError(t, err)
	assert.NotNil(t, ciphertext)
	assert.Len(t, nonce, 12)

	t.Run("round trip", func(t *testing.T) {
		decrypted, err := encryptor.Decrypt(ciphertext, nonce, aad)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("wrong aad fails authentication", func(t *testing.T) {
		_, err := encryptor.Decrypt(ciphertext, nonce, []byte("other"))
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext fails authentication", func(t *testing.T) {
		tampered := append([]byte{}, ciphertext...)
		tampered[0] ^= 0xff
		_, err := encryptor.Decrypt(tampered, nonce, aad)
		assert.Error(t, err)
	})
}

func TestGCMEncryptor_SelfTest(t *testing.T) {
	factory := NewGCMEncryptorFactory(domain.NewGCMConfiguration(), nil)
	encryptor, err := factory.NewEncryptor(newKeyMaterial(t, 64))
	require.NoError(t, err)
	defer encryptor.Close()

	assert.NoError(t, encryptor.SelfTest())
}

func TestGCMEncryptor_Close(t *testing.T) {
	factory := NewGCMEncryptorFactory(domain.NewGCMConfiguration(), nil)
	encryptor, err := factory.NewEncryptor(newKeyMaterial(t, 64))
	require.NoError(t, err)

	inner, ok := encryptor.(*aeadEncryptor)
	require.True(t, ok)
	assert.Len(t, inner.key, 32)

	encryptor.Close()
	assert.Nil(t, inner.key)
	assert.True(t, inner.closed)

	assert.NotPanics(t, func() { encryptor.Close() })
}

func TestDeriveKey(t *testing.T) {
	material := []byte("some key material")

	t.Run("deterministic for same material", func(t *testing.T) {
		a, err := deriveKey(material, 32, gcmKeyDerivationInfo)
		require.NoError(t, err)
		b, err := deriveKey(material, 32, gcmKeyDerivationInfo)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("different info yields different keys", func(t *testing.T) {
		a, err := deriveKey(material, 32, gcmKeyDerivationInfo)
		require.NoError(t, err)
		b, err := deriveKey(material, 32, chachaKeyDerivationInfo)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
