package domain

import (
	"fmt"
	"strings"
)

// EntityKind names the type half of a polymorphic reference.
type EntityKind string

const (
	KindUser         EntityKind = "user"
	KindCurrency     EntityKind = "currency"
	KindExchangeRate EntityKind = "exchange_rate"
	KindTransaction  EntityKind = "transaction"
	KindAccount      EntityKind = "account"
)

var knownKinds = map[EntityKind]struct{}{
	KindUser:         {},
	KindCurrency:     {},
	KindExchangeRate: {},
	KindTransaction:  {},
	KindAccount:      {},
}

// ParseEntityKind validates a kind received from outside the process.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownKinds[k]; !ok {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}

// IsValid reports whether k is one of the declared kinds.
func (k EntityKind) IsValid() bool {
	_, ok := knownKinds[k]
	return ok
}

// Ref is a tagged reference to an entity of any declared kind.
// The zero value means "no reference".
type Ref struct {
	Kind EntityKind `json:"kind,omitempty"`
	ID   string     `json:"id,omitempty"`
}

// NewRef builds a reference.
func NewRef(kind EntityKind, id string) Ref {
	return Ref{Kind: kind, ID: id}
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

func (r Ref) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return string(r.Kind) + ":" + r.ID
}

// Entity is anything a Ref can resolve to.
type Entity interface {
	EntityRef() Ref
}

func (c Currency) EntityRef() Ref     { return NewRef(KindCurrency, c.CurrencyCode) }
func (r ExchangeRate) EntityRef() Ref { return NewRef(KindExchangeRate, r.ExchangeRateID) }
func (t Transaction) EntityRef() Ref  { return NewRef(KindTransaction, t.TransactionID) }
func (a Account) EntityRef() Ref      { return NewRef(KindAccount, a.AccountID) }
