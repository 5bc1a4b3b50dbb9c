package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGCMConfiguration(t *testing.T) {
	cfg := NewGCMConfiguration()

	assert.Equal(t, "AES", cfg.Algorithm)
	assert.Equal(t, "", cfg.Provider)
	assert.Equal(t, 256, cfg.KeySizeBits)
	assert.Nil(t, cfg.MasterKey())
	assert.Equal(t, KindGCM, cfg.Kind())
}

func TestGCMConfiguration_SetMasterKey(t *testing.T) {
	t.Run("assigns the secret", func(t *testing.T) {
		cfg := NewGCMConfiguration()
		secret, err := GenerateSecret(32)
		require.NoError(t, err)

		cfg.SetMasterKey(secret)
		assert.Same(t, secret, cfg.MasterKey())

		secret.Release()
	})

	t.Run("releases the prior secret", func(t *testing.T) {
		cfg := NewGCMConfiguration()
		first, err := GenerateSecret(32)
		require.NoError(t, err)
		second, err := GenerateSecret(32)
		require.NoError(t, err)

		cfg.SetMasterKey(first)
		cfg.SetMasterKey(second)

		assert.Equal(t, 0, first.Len())
		assert.Equal(t, 32, second.Len())

		second.Release()
	})

	t.Run("reassigning the same secret keeps it alive", func(t *testing.T) {
		cfg := NewGCMConfiguration()
		secret, err := GenerateSecret(32)
		require.NoError(t, err)

		cfg.SetMasterKey(secret)
		cfg.SetMasterKey(secret)

		assert.Equal(t, 32, secret.Len())
		secret.Release()
	})
}

func TestNewChaCha20Poly1305Configuration(t *testing.T) {
	cfg := NewChaCha20Poly1305Configuration()

	assert.Equal(t, KindChaCha20Poly1305, cfg.Kind())
	assert.Nil(t, cfg.MasterKey())

	secret, err := GenerateSecret(32)
	require.NoError(t, err)
	cfg.SetMasterKey(secret)
	assert.Same(t, secret, cfg.MasterKey())
	secret.Release()
}
