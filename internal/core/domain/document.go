package domain

import "time"

// DocumentRef is a link from an entity to an attached document owned by the
// document subsystem. Only the link is stored here.
type DocumentRef struct {
	DocumentID string    `json:"documentID"`
	Owner      Ref       `json:"owner"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// StatusChangedEvent is emitted after a transaction or account changes status.
type StatusChangedEvent struct {
	Kind      EntityKind `json:"kind"`
	EntityID  string     `json:"entityID"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	ChangedBy string     `json:"changedBy"`
	ChangedAt time.Time  `json:"changedAt"`
}
