package domain

// DescriptorKind is the discriminator written alongside a persisted descriptor
// document. It names the deserialization logic able to reconstruct a working
// configuration and master key from the document, so a loader can dispatch by
// explicit registry lookup instead of inspecting the document itself.
//
// Kinds are versioned: a schema change mints a new kind rather than changing
// the meaning of an existing one.
type DescriptorKind string

const (
	// KindGCM identifies descriptors produced by the GCM/native-provider
	// configuration variant.
	KindGCM DescriptorKind = "gcm-v1"

	// KindChaCha20Poly1305 identifies descriptors produced by the
	// ChaCha20-Poly1305 configuration variant.
	KindChaCha20Poly1305 DescriptorKind = "chacha20-poly1305-v1"
)

const (
	// DefaultAlgorithm is the block cipher used when a configuration does not
	// choose one explicitly.
	DefaultAlgorithm = "AES"

	// DefaultKeySizeBits is the key size used when a configuration does not
	// choose one explicitly.
	DefaultKeySizeBits = 256

	// MinKeySizeBits is the smallest key size accepted at validation time.
	// Smaller values can be set on a configuration but fail validation.
	MinKeySizeBits = 128

	// BlockSizeBits is the block size GCM requires of the chosen cipher.
	BlockSizeBits = 128

	// MasterKeySizeBits is the size of the secret generated by an export that
	// was not handed one by the caller.
	MasterKeySizeBits = 256

	// ValidationKeySizeBits is the size of the throwaway key generated for the
	// self-test round trip. The key is discarded after the test and never
	// appears in a descriptor.
	ValidationKeySizeBits = 512
)

// MasterKeyElement is the tag of the document fragment holding serialized
// secret material.
const MasterKeyElement = "masterKey"
