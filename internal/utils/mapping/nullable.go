package mapping

import "github.com/SscSPs/money_billing/internal/core/domain"

// NullableString maps an empty domain value to a NULL column.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue maps a NULL column to an empty domain value.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ToModelRef splits a reference into its nullable kind/id columns.
func ToModelRef(r domain.Ref) (*string, *string) {
	if r.IsZero() {
		return nil, nil
	}
	return NullableString(string(r.Kind)), NullableString(r.ID)
}

// ToDomainRef joins nullable kind/id columns back into a reference.
func ToDomainRef(kind, id *string) domain.Ref {
	return domain.Ref{Kind: domain.EntityKind(StringValue(kind)), ID: StringValue(id)}
}
