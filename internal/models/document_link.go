package models

import "time"

// DocumentLink is a document in the document_links collection.
type DocumentLink struct {
	DocumentID string    `bson:"document_id"`
	OwnerKind  string    `bson:"owner_kind"`
	OwnerID    string    `bson:"owner_id"`
	Title      string    `bson:"title"`
	URL        string    `bson:"url,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
	CreatedBy  string    `bson:"created_by"`
}
