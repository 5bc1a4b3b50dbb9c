package domain

import (
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// Descriptor is a persisted export of a configuration plus its master key: the
// unit the external key repository stores and later processes reconstruct an
// encryptor from. The document is a snapshot produced once per export call and
// never mutated after construction; mutating the source configuration does not
// affect it.
type Descriptor struct {
	ID        uuid.UUID      // Unique identifier (UUIDv7)
	Kind      DescriptorKind // Names the deserializer able to parse Document
	Document  *etree.Document
	CreatedAt time.Time
}

// NewDescriptor wraps a freshly built document with its discriminator.
func NewDescriptor(kind DescriptorKind, doc *etree.Document) *Descriptor {
	return &Descriptor{
		ID:        uuid.Must(uuid.NewV7()),
		Kind:      kind,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
}

// XML renders the document as indented XML. The descriptor's own document is
// left untouched; rendering works on a copy.
func (d *Descriptor) XML() (string, error) {
	doc := d.Document.Copy()
	doc.Indent(2)
	return doc.WriteToString()
}
