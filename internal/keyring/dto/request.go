// Package dto provides data transfer objects for descriptor requests.
package dto

import (
	"encoding/base64"
	"fmt"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/keyring/internal/errors"
	"github.com/allisson/keyring/internal/keyring/domain"
	customValidation "github.com/allisson/keyring/internal/validation"
)

// DescriptorRequest contains the parameters for building a configuration to
// export as a descriptor.
type DescriptorRequest struct {
	Kind        string `json:"kind"` // "gcm-v1" or "chacha20-poly1305-v1"
	Algorithm   string `json:"algorithm"`
	Provider    string `json:"provider"`
	KeySizeBits int    `json:"key_size_bits"`
	Secret      string `json:"secret"` // Base64-encoded master key material, optional
}

// Validate checks if the descriptor request is structurally valid. Semantic
// checks like the supported algorithm set and the minimum key size belong to
// configuration validation, so their typed errors surface there.
func (r *DescriptorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Kind,
			validation.Required,
			customValidation.NotBlank,
			validation.By(validateKind),
		),
		validation.Field(&r.Algorithm,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Provider,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.KeySizeBits,
			validation.Min(0),
		),
		validation.Field(&r.Secret,
			customValidation.Base64,
		),
	)
}

// ToConfiguration builds the configuration variant the request describes.
// Unset GCM fields keep their defaults; the ChaCha20-Poly1305 variant has no
// tunable parameters.
func (r *DescriptorRequest) ToConfiguration() (domain.Configuration, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindGCM:
		cfg := domain.NewGCMConfiguration()
		if r.Algorithm != "" {
			cfg.Algorithm = r.Algorithm
		}
		if r.Provider != "" {
			cfg.Provider = r.Provider
		}
		if r.KeySizeBits != 0 {
			cfg.KeySizeBits = r.KeySizeBits
		}
		return cfg, nil
	case domain.KindChaCha20Poly1305:
		return domain.NewChaCha20Poly1305Configuration(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDescriptorKind, kind)
	}
}

// SecretBytes decodes the optional master key material. Returns nil when no
// secret was provided.
func (r *DescriptorRequest) SecretBytes() ([]byte, error) {
	if r.Secret == "" {
		return nil, nil
	}
	material, err := base64.StdEncoding.DecodeString(r.Secret)
	if err != nil {
		return nil, fmt.Errorf("invalid secret: %w", err)
	}
	return material, nil
}

// validateKind validates that the descriptor kind is registered.
func validateKind(value interface{}) error {
	kind, ok := value.(string)
	if !ok {
		return validation.NewError("validation_kind_type", "must be a string")
	}

	_, err := ParseKind(kind)
	return err
}

// ParseKind converts a string to a domain.DescriptorKind.
// Returns an error if the kind is not registered.
func ParseKind(kind string) (domain.DescriptorKind, error) {
	switch domain.DescriptorKind(kind) {
	case domain.KindGCM:
		return domain.KindGCM, nil
	case domain.KindChaCha20Poly1305:
		return domain.KindChaCha20Poly1305, nil
	default:
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "kind must be %q or %q", domain.KindGCM, domain.KindChaCha20Poly1305)
	}
}
