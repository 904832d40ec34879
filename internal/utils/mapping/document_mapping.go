package mapping

import (
	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/models"
)

// ToModelDocumentLink converts a domain DocumentRef to its stored form
func ToModelDocumentLink(d domain.DocumentRef) models.DocumentLink {
	return models.DocumentLink{
		DocumentID: d.DocumentID,
		OwnerKind:  string(d.Owner.Kind),
		OwnerID:    d.Owner.ID,
		Title:      d.Title,
		URL:        d.URL,
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
	}
}

// ToDomainDocumentRef converts a stored link back to a domain DocumentRef
func ToDomainDocumentRef(m models.DocumentLink) domain.DocumentRef {
	return domain.DocumentRef{
		DocumentID: m.DocumentID,
		Owner:      domain.NewRef(domain.EntityKind(m.OwnerKind), m.OwnerID),
		Title:      m.Title,
		URL:        m.URL,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}
