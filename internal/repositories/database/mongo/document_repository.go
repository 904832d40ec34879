package mongo

import (
	"context"
	"fmt"

	"github.com/SscSPs/money_billing/internal/apperrors"
	"github.com/SscSPs/money_billing/internal/core/domain"
	portsrepo "github.com/SscSPs/money_billing/internal/core/ports/repositories"
	"github.com/SscSPs/money_billing/internal/models"
	"github.com/SscSPs/money_billing/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentLinksCollection holds one document per entity-to-document link.
const DocumentLinksCollection = "document_links"

// DocumentRepository stores document links in MongoDB.
type DocumentRepository struct {
	db *mongo.Database
}

// NewDocumentRepository creates a document link repository on db.
func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{db: db}
}

var _ portsrepo.DocumentLinkRepository = (*DocumentRepository)(nil)

// EnsureIndexes creates the owner lookup index. A document is linked to an owner at most once.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(DocumentLinksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_kind", Value: 1},
			{Key: "owner_id", Value: 1},
			{Key: "document_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("owner_document_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create document link index: %w", err)
	}
	return nil
}

// AttachDocument stores a new link.
func (r *DocumentRepository) AttachDocument(ctx context.Context, doc domain.DocumentRef) error {
	_, err := r.db.Collection(DocumentLinksCollection).InsertOne(ctx, mapping.ToModelDocumentLink(doc))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("document %s already attached to %s: %w", doc.DocumentID, doc.Owner, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to attach document %s: %w", doc.DocumentID, err)
	}
	return nil
}

// DocumentsFor returns the links owned by the referenced entity, oldest first.
func (r *DocumentRepository) DocumentsFor(ctx context.Context, owner domain.Ref) ([]domain.DocumentRef, error) {
	filter := bson.M{"owner_kind": string(owner.Kind), "owner_id": owner.ID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "document_id", Value: 1}})

	cursor, err := r.db.Collection(DocumentLinksCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents for %s: %w", owner, err)
	}
	defer cursor.Close(ctx)

	var links []models.DocumentLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, fmt.Errorf("failed to decode documents for %s: %w", owner, err)
	}

	docs := make([]domain.DocumentRef, len(links))
	for i, l := range links {
		docs[i] = mapping.ToDomainDocumentRef(l)
	}
	return docs, nil
}
