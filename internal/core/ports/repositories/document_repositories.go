package repositories

import (
	"context"

	"github.com/SscSPs/money_billing/internal/core/domain"
)

// DocumentLinkRepository looks up documents attached to an entity.
type DocumentLinkRepository interface {
	// DocumentsFor returns the links owned by the referenced entity, oldest first.
	DocumentsFor(ctx context.Context, owner domain.Ref) ([]domain.DocumentRef, error)

	// AttachDocument stores a new link.
	AttachDocument(ctx context.Context, doc domain.DocumentRef) error
}
