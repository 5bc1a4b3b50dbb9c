package service

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/allisson/keyring/internal/keyring/domain"
)

// Deserializer reconstructs a configuration and its master key from a
// descriptor document.
type Deserializer func(doc *etree.Document) (domain.Configuration, *domain.Secret, error)

// deserializers is the static registry mapping each descriptor kind to its
// reconstruction logic. The enumeration is closed: dispatch happens by
// explicit lookup on the discriminator stored next to the document, never by
// inspecting the document.
var deserializers = map[domain.DescriptorKind]Deserializer{
	domain.KindGCM:              deserializeGCM,
	domain.KindChaCha20Poly1305: deserializeChaCha20Poly1305,
}

// DeserializerFor returns the deserializer registered for kind.
func DeserializerFor(kind domain.DescriptorKind) (Deserializer, error) {
	deserializer, ok := deserializers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDescriptorKind, kind)
	}
	return deserializer, nil
}

// Reconstruct dispatches on the descriptor's kind and rebuilds the matching
// configuration plus master key. The caller owns the returned secret.
func Reconstruct(d *domain.Descriptor) (domain.Configuration, *domain.Secret, error) {
	deserializer, err := DeserializerFor(d.Kind)
	if err != nil {
		return nil, nil, err
	}
	return deserializer(d.Document)
}

// IsProtected reports whether the descriptor's master key element has been
// wrapped by a KMS keeper.
func IsProtected(d *domain.Descriptor) bool {
	masterKey := selectMasterKey(d.Document)
	return masterKey != nil && masterKey.SelectAttr(kmsAttr) != nil
}

func deserializeGCM(doc *etree.Document) (domain.Configuration, *domain.Secret, error) {
	enc, masterKeyEl, err := selectDescriptorParts(doc)
	if err != nil {
		return nil, nil, err
	}

	cfg := domain.NewGCMConfiguration()
	cfg.Algorithm = enc.SelectAttrValue(algorithmAttr, "")
	if cfg.Algorithm == "" {
		return nil, nil, fmt.Errorf("%w: missing %s attribute", domain.ErrMalformedDescriptor, algorithmAttr)
	}

	keyLength := enc.SelectAttrValue(keyLengthAttr, "")
	cfg.KeySizeBits, err = strconv.Atoi(keyLength)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid %s %q", domain.ErrMalformedDescriptor, keyLengthAttr, keyLength)
	}

	cfg.Provider = enc.SelectAttrValue(providerAttr, "")

	secret, err := domain.SecretFromElement(masterKeyEl)
	if err != nil {
		return nil, nil, err
	}

	return cfg, secret, nil
}

func deserializeChaCha20Poly1305(doc *etree.Document) (domain.Configuration, *domain.Secret, error) {
	_, masterKeyEl, err := selectDescriptorParts(doc)
	if err != nil {
		return nil, nil, err
	}

	secret, err := domain.SecretFromElement(masterKeyEl)
	if err != nil {
		return nil, nil, err
	}

	return domain.NewChaCha20Poly1305Configuration(), secret, nil
}

// selectDescriptorParts pulls the encryption and masterKey elements out of a
// descriptor document, rejecting protected master keys.
func selectDescriptorParts(doc *etree.Document) (*etree.Element, *etree.Element, error) {
	root := doc.SelectElement(descriptorTag)
	if root == nil {
		return nil, nil, fmt.Errorf("%w: missing <%s> root", domain.ErrMalformedDescriptor, descriptorTag)
	}

	enc := root.SelectElement(encryptionTag)
	if enc == nil {
		return nil, nil, fmt.Errorf("%w: missing <%s> element", domain.ErrMalformedDescriptor, encryptionTag)
	}

	masterKeyEl := root.SelectElement(domain.MasterKeyElement)
	if masterKeyEl == nil {
		return nil, nil, fmt.Errorf("%w: missing <%s> element", domain.ErrMalformedDescriptor, domain.MasterKeyElement)
	}
	if masterKeyEl.SelectAttr(kmsAttr) != nil {
		return nil, nil, fmt.Errorf("%w: unprotect before reconstructing", domain.ErrDescriptorProtected)
	}

	return enc, masterKeyEl, nil
}

func selectMasterKey(doc *etree.Document) *etree.Element {
	root := doc.SelectElement(descriptorTag)
	if root == nil {
		return nil
	}
	return root.SelectElement(domain.MasterKeyElement)
}
