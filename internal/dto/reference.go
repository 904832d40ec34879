package dto

import "github.com/SscSPs/money_billing/internal/core/domain"

// RefRequest is a polymorphic reference as received from clients.
// Both fields must be set together.
type RefRequest struct {
	Kind string `json:"kind" binding:"required_with=ID,omitempty,entity_kind"`
	ID   string `json:"id" binding:"required_with=Kind,omitempty,max=255"`
}

// ToDomain converts the request into a domain reference. Nil maps to the zero Ref.
func (r *RefRequest) ToDomain() domain.Ref {
	if r == nil || (r.Kind == "" && r.ID == "") {
		return domain.Ref{}
	}
	kind, _ := domain.ParseEntityKind(r.Kind)
	return domain.NewRef(kind, r.ID)
}

// RefResponse mirrors domain.Ref; omitted when unset.
type RefResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// ToRefResponse converts a domain reference, returning nil for an unset one.
func ToRefResponse(r domain.Ref) *RefResponse {
	if r.IsZero() {
		return nil
	}
	return &RefResponse{Kind: string(r.Kind), ID: r.ID}
}
