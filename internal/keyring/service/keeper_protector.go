package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"gocloud.dev/secrets"

	"github.com/allisson/keyring/internal/keyring/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (domain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// KeeperProtector wraps and unwraps a descriptor's master key material through
// a KMS keeper, so persisted descriptors never carry the key in the clear.
// Protected master key elements are marked with a kms attribute holding the
// key URI they were wrapped with.
type KeeperProtector struct {
	kms    KMSService
	keyURI string
	logger *slog.Logger
}

// NewKeeperProtector creates a protector bound to keyURI. A nil logger is
// replaced with a discarding one.
func NewKeeperProtector(kms KMSService, keyURI string, logger *slog.Logger) *KeeperProtector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KeeperProtector{
		kms:    kms,
		keyURI: keyURI,
		logger: logger,
	}
}

// Protect returns a copy of the descriptor whose master key content has been
// encrypted by the keeper. The input descriptor is left untouched; ID and
// creation time carry over because it is the same logical descriptor.
func (p *KeeperProtector) Protect(ctx context.Context, d *domain.Descriptor) (*domain.Descriptor, error) {
	doc := d.Document.Copy()

	masterKeyEl := selectMasterKey(doc)
	if masterKeyEl == nil {
		return nil, fmt.Errorf("%w: missing <%s> element", domain.ErrMalformedDescriptor, domain.MasterKeyElement)
	}
	if masterKeyEl.SelectAttr(kmsAttr) != nil {
		return nil, fmt.Errorf("%w: already protected", domain.ErrDescriptorProtected)
	}

	plaintext, err := base64.StdEncoding.DecodeString(masterKeyEl.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 in <%s>: %v", domain.ErrMalformedDescriptor, domain.MasterKeyElement, err)
	}
	defer domain.Zero(plaintext)

	keeper, err := p.kms.OpenKeeper(ctx, p.keyURI)
	if err != nil {
		return nil, err
	}
	defer p.closeKeeper(keeper)

	ciphertext, err := keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to protect master key: %w", err)
	}

	masterKeyEl.SetText(base64.StdEncoding.EncodeToString(ciphertext))
	masterKeyEl.CreateAttr(kmsAttr, p.keyURI)

	p.logger.Debug("descriptor protected",
		slog.String("id", d.ID.String()),
		slog.String("key_uri", p.keyURI),
	)

	return &domain.Descriptor{
		ID:        d.ID,
		Kind:      d.Kind,
		Document:  doc,
		CreatedAt: d.CreatedAt,
	}, nil
}

// Unprotect is the inverse of Protect: it returns a copy with the master key
// content decrypted and the kms marker removed.
func (p *KeeperProtector) Unprotect(ctx context.Context, d *domain.Descriptor) (*domain.Descriptor, error) {
	doc := d.Document.Copy()

	masterKeyEl := selectMasterKey(doc)
	if masterKeyEl == nil {
		return nil, fmt.Errorf("%w: missing <%s> element", domain.ErrMalformedDescriptor, domain.MasterKeyElement)
	}
	if masterKeyEl.SelectAttr(kmsAttr) == nil {
		return nil, fmt.Errorf("%w: <%s> is not protected", domain.ErrMalformedDescriptor, domain.MasterKeyElement)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(masterKeyEl.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 in <%s>: %v", domain.ErrMalformedDescriptor, domain.MasterKeyElement, err)
	}

	keeper, err := p.kms.OpenKeeper(ctx, p.keyURI)
	if err != nil {
		return nil, err
	}
	defer p.closeKeeper(keeper)

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unprotect master key: %w", err)
	}
	defer domain.Zero(plaintext)

	masterKeyEl.SetText(base64.StdEncoding.EncodeToString(plaintext))
	masterKeyEl.RemoveAttr(kmsAttr)

	return &domain.Descriptor{
		ID:        d.ID,
		Kind:      d.Kind,
		Document:  doc,
		CreatedAt: d.CreatedAt,
	}, nil
}

func (p *KeeperProtector) closeKeeper(keeper domain.KMSKeeper) {
	if err := keeper.Close(); err != nil {
		p.logger.Error("failed to close KMS keeper", slog.Any("error", err))
	}
}
