package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/keyring/internal/keyring/domain"
)

func TestDescriptorRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest_GCM", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:        "gcm-v1",
			Algorithm:   "AES",
			KeySizeBits: 256,
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_ValidRequest_ChaCha20", func(t *testing.T) {
		req := DescriptorRequest{
			Kind: "chacha20-poly1305-v1",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_UnknownAlgorithmPassesStructuralValidation", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:      "gcm-v1",
			Algorithm: "Blowfish",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_SmallKeySizePassesStructuralValidation", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:        "gcm-v1",
			KeySizeBits: 64,
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingKind", func(t *testing.T) {
		req := DescriptorRequest{
			Kind: "",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_InvalidKind", func(t *testing.T) {
		req := DescriptorRequest{
			Kind: "rsa-oaep-v1",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_NegativeKeySize", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:        "gcm-v1",
			KeySizeBits: -256,
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_InvalidSecretEncoding", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:   "gcm-v1",
			Secret: "not base64!",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_AlgorithmWithWhitespace", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:      "gcm-v1",
			Algorithm: " AES",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestDescriptorRequest_ToConfiguration(t *testing.T) {
	t.Run("Success_GCMDefaults", func(t *testing.T) {
		req := DescriptorRequest{Kind: "gcm-v1"}

		cfg, err := req.ToConfiguration()
		require.NoError(t, err)

		gcm, ok := cfg.(*domain.GCMConfiguration)
		require.True(t, ok)
		assert.Equal(t, domain.DefaultAlgorithm, gcm.Algorithm)
		assert.Equal(t, "", gcm.Provider)
		assert.Equal(t, domain.DefaultKeySizeBits, gcm.KeySizeBits)
	})

	t.Run("Success_GCMOverrides", func(t *testing.T) {
		req := DescriptorRequest{
			Kind:        "gcm-v1",
			Algorithm:   "AES",
			Provider:    "go-crypto",
			KeySizeBits: 192,
		}

		cfg, err := req.ToConfiguration()
		require.NoError(t, err)

		gcm, ok := cfg.(*domain.GCMConfiguration)
		require.True(t, ok)
		assert.Equal(t, "go-crypto", gcm.Provider)
		assert.Equal(t, 192, gcm.KeySizeBits)
	})

	t.Run("Success_ChaCha20", func(t *testing.T) {
		req := DescriptorRequest{Kind: "chacha20-poly1305-v1"}

		cfg, err := req.ToConfiguration()
		require.NoError(t, err)

		_, ok := cfg.(*domain.ChaCha20Poly1305Configuration)
		assert.True(t, ok)
	})

	t.Run("Error_InvalidKind", func(t *testing.T) {
		req := DescriptorRequest{Kind: "rsa-oaep-v1"}

		_, err := req.ToConfiguration()
		assert.Error(t, err)
	})
}

func TestDescriptorRequest_SecretBytes(t *testing.T) {
	t.Run("Success_DecodesSecret", func(t *testing.T) {
		req := DescriptorRequest{Secret: "aGVsbG8="}

		material, err := req.SecretBytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), material)
	})

	t.Run("Success_EmptySecret", func(t *testing.T) {
		req := DescriptorRequest{}

		material, err := req.SecretBytes()
		require.NoError(t, err)
		assert.Nil(t, material)
	})

	t.Run("Error_InvalidEncoding", func(t *testing.T) {
		req := DescriptorRequest{Secret: "not base64!"}

		_, err := req.SecretBytes()
		assert.Error(t, err)
	})
}

func TestParseKind(t *testing.T) {
	t.Run("Success_RegisteredKinds", func(t *testing.T) {
		kind, err := ParseKind("gcm-v1")
		require.NoError(t, err)
		assert.Equal(t, domain.KindGCM, kind)

		kind, err = ParseKind("chacha20-poly1305-v1")
		require.NoError(t, err)
		assert.Equal(t, domain.KindChaCha20Poly1305, kind)
	})

	t.Run("Error_UnknownKind", func(t *testing.T) {
		_, err := ParseKind("mystery-v1")
		assert.Error(t, err)
	})
}
