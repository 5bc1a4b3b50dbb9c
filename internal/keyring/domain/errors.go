package domain

import (
	"github.com/allisson/keyring/internal/errors"
)

// Configuration and descriptor error definitions.
//
// All of these are fatal to the operation that raised them: nothing at this
// layer retries, and there is no transient-fault classification. A failed
// Validate must abort registration of the configuration; a failed export must
// abort the key-generation event that triggered it. Callers get the offending
// algorithm/provider/key-size values attached so the failure can be diagnosed
// without re-running.
var (
	// ErrUnsupportedAlgorithm indicates the configured algorithm identifier is
	// not known to the encryptor factory.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedProvider indicates the configured provider name is not
	// registered with the encryptor factory. An empty provider always resolves
	// to the platform default and never raises this.
	ErrUnsupportedProvider = errors.Wrap(errors.ErrInvalidInput, "unsupported provider")

	// ErrKeySizeTooSmall indicates the configured key size is below
	// MinKeySizeBits. Setters do not enforce this; validation does.
	ErrKeySizeTooSmall = errors.Wrap(errors.ErrInvalidInput, "key size too small")

	// ErrBlockSizeMismatch indicates the chosen algorithm's block size is not
	// the 128 bits GCM requires. Detected by the factory before any key
	// material is touched.
	ErrBlockSizeMismatch = errors.Wrap(errors.ErrInvalidInput, "block size mismatch")

	// ErrSelfTestFailed indicates the encrypt/decrypt round trip did not
	// reproduce the original plaintext. The configuration must not be trusted.
	ErrSelfTestFailed = errors.New("self test round trip failed")

	// ErrSecretGeneration indicates random key material could not be obtained.
	ErrSecretGeneration = errors.New("secret generation failed")

	// ErrUnknownDescriptorKind indicates no deserializer is registered for the
	// discriminator carried by a persisted descriptor.
	ErrUnknownDescriptorKind = errors.Wrap(errors.ErrInvalidInput, "unknown descriptor kind")

	// ErrMalformedDescriptor indicates a descriptor document is missing a
	// required node or attribute, or carries one that cannot be parsed.
	ErrMalformedDescriptor = errors.Wrap(errors.ErrInvalidInput, "malformed descriptor document")

	// ErrDescriptorProtected indicates the descriptor's master key element is
	// KMS-protected and must be unprotected before reconstruction.
	ErrDescriptorProtected = errors.Wrap(errors.ErrLocked, "descriptor master key is protected")
)
