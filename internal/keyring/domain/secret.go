// Package domain defines the core entities for authenticated-encryption
// configuration and descriptor export: secrets, algorithm configurations, and
// the persisted descriptor documents that later processes reconstruct working
// encryptors from.
package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/beevik/etree"
)

// Secret is an opaque, exclusively owned buffer of raw key material.
//
// The bytes live in a memguard locked buffer: guarded pages, never swapped,
// wiped when released. A Secret is immutable once created and is owned by
// whoever holds the reference; passing it to a configuration's master-key slot
// transfers ownership. It is never copied implicitly.
type Secret struct {
	buf *memguard.LockedBuffer
}

// NewSecret creates a Secret that takes ownership of material. The source
// slice is wiped as the bytes move into guarded memory, so the caller must not
// use it afterwards.
func NewSecret(material []byte) *Secret {
	if len(material) == 0 {
		return &Secret{}
	}
	return &Secret{buf: memguard.NewBufferFromBytes(material)}
}

// GenerateSecret creates a Secret with byteLength bytes of cryptographically
// random material. Returns ErrSecretGeneration if the random source fails or
// byteLength is not positive.
func GenerateSecret(byteLength int) (*Secret, error) {
	if byteLength <= 0 {
		return nil, fmt.Errorf("%w: invalid length %d", ErrSecretGeneration, byteLength)
	}
	material := make([]byte, byteLength)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSecretGeneration, err)
	}
	return NewSecret(material), nil
}

// SecretFromElement reconstructs a Secret from a masterKey document fragment.
func SecretFromElement(el *etree.Element) (*Secret, error) {
	if el == nil || el.Tag != MasterKeyElement {
		return nil, fmt.Errorf("%w: expected <%s> element", ErrMalformedDescriptor, MasterKeyElement)
	}
	material, err := base64.StdEncoding.DecodeString(el.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 in <%s>: %v", ErrMalformedDescriptor, MasterKeyElement, err)
	}
	if len(material) == 0 {
		return nil, fmt.Errorf("%w: empty <%s> element", ErrMalformedDescriptor, MasterKeyElement)
	}
	return NewSecret(material), nil
}

// Len returns the number of bytes held, or 0 after release.
func (s *Secret) Len() int {
	if s.buf == nil || !s.buf.IsAlive() {
		return 0
	}
	return s.buf.Size()
}

// Bytes returns a view of the key material. The slice is borrowed: it stays
// owned by the Secret and is invalid after Release.
func (s *Secret) Bytes() []byte {
	if s.buf == nil || !s.buf.IsAlive() {
		return nil
	}
	return s.buf.Bytes()
}

// ToElement serializes the secret into a masterKey document fragment with the
// key material base64-encoded as the element text. The fragment holds a copy;
// releasing the Secret afterwards does not affect it.
func (s *Secret) ToElement() *etree.Element {
	el := etree.NewElement(MasterKeyElement)
	el.SetText(base64.StdEncoding.EncodeToString(s.Bytes()))
	return el
}

// Release wipes the key material and frees the guarded buffer. Safe to call
// more than once.
func (s *Secret) Release() {
	if s.buf != nil {
		s.buf.Destroy()
	}
}
