package domain

// Configuration is an algorithm configuration that descriptors can be exported
// from. Implementations are closed: each maps to exactly one DescriptorKind in
// the deserializer registry.
type Configuration interface {
	// Kind returns the discriminator for descriptors exported from this
	// configuration.
	Kind() DescriptorKind

	// SetMasterKey assigns key material to the master-key slot, releasing any
	// prior value. See the single-writer note on the concrete types.
	SetMasterKey(secret *Secret)

	// MasterKey returns the currently assigned master key, or nil.
	MasterKey() *Secret
}

// GCMConfiguration configures a block cipher run in Galois/Counter Mode
// through a native cryptographic provider.
//
// Property setters perform no validation: an invalid configuration can exist
// transiently and is rejected by the self-test validator at registration time.
// The struct is not safe for concurrent mutation; in particular the master-key
// slot has a single-writer precondition — export mutates it, so callers must
// serialize Export and Validate calls on one instance. Independent instances
// can be validated in parallel.
type GCMConfiguration struct {
	// Algorithm identifies the block cipher, e.g. "AES".
	Algorithm string

	// Provider names the cryptographic provider. Empty means the platform
	// default provider, and is omitted from exported descriptors.
	Provider string

	// KeySizeBits is the encryption key size. Must be at least MinKeySizeBits
	// to pass validation.
	KeySizeBits int

	masterKey *Secret
}

// NewGCMConfiguration creates a configuration with defaults: AES, no explicit
// provider, 256-bit key.
func NewGCMConfiguration() *GCMConfiguration {
	return &GCMConfiguration{
		Algorithm:   DefaultAlgorithm,
		KeySizeBits: DefaultKeySizeBits,
	}
}

// Kind returns KindGCM.
func (c *GCMConfiguration) Kind() DescriptorKind {
	return KindGCM
}

// SetMasterKey assigns secret to the master-key slot, taking ownership. Any
// previously assigned secret is released. Callers must not share the slot
// across concurrent writers.
func (c *GCMConfiguration) SetMasterKey(secret *Secret) {
	if c.masterKey != nil && c.masterKey != secret {
		c.masterKey.Release()
	}
	c.masterKey = secret
}

// MasterKey returns the assigned master key, or nil before the first export.
func (c *GCMConfiguration) MasterKey() *Secret {
	return c.masterKey
}

// ChaCha20Poly1305Configuration configures the ChaCha20-Poly1305 AEAD. The
// cipher takes a fixed 256-bit key and has no provider concept, so the only
// state is the master-key slot, with the same single-writer precondition as
// GCMConfiguration.
type ChaCha20Poly1305Configuration struct {
	masterKey *Secret
}

// NewChaCha20Poly1305Configuration creates an empty configuration.
func NewChaCha20Poly1305Configuration() *ChaCha20Poly1305Configuration {
	return &ChaCha20Poly1305Configuration{}
}

// Kind returns KindChaCha20Poly1305.
func (c *ChaCha20Poly1305Configuration) Kind() DescriptorKind {
	return KindChaCha20Poly1305
}

// SetMasterKey assigns secret to the master-key slot, releasing any prior value.
func (c *ChaCha20Poly1305Configuration) SetMasterKey(secret *Secret) {
	if c.masterKey != nil && c.masterKey != secret {
		c.masterKey.Release()
	}
	c.masterKey = secret
}

// MasterKey returns the assigned master key, or nil before the first export.
func (c *ChaCha20Poly1305Configuration) MasterKey() *Secret {
	return c.masterKey
}
