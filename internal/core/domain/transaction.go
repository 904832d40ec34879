package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransactionStatus is the lifecycle state of a Transaction.
type TransactionStatus int16

const (
	TransactionUnknown   TransactionStatus = 0
	TransactionAccepted  TransactionStatus = 1
	TransactionCompleted TransactionStatus = 2
	TransactionCancelled TransactionStatus = 3
)

var transactionStatusNames = map[TransactionStatus]string{
	TransactionUnknown:   "UNKNOWN",
	TransactionAccepted:  "ACCEPTED",
	TransactionCompleted: "COMPLETED",
	TransactionCancelled: "CANCELLED",
}

// Allowed forward moves; anything else is rejected.
var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionUnknown:  {TransactionAccepted, TransactionCancelled},
	TransactionAccepted: {TransactionCompleted, TransactionCancelled},
}

func (s TransactionStatus) String() string {
	if name, ok := transactionStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TransactionStatus(%d)", int16(s))
}

// IsValid reports whether s is a declared status.
func (s TransactionStatus) IsValid() bool {
	_, ok := transactionStatusNames[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TransactionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TransactionStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTransactionStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseTransactionStatus accepts a status name in any case.
func ParseTransactionStatus(name string) (TransactionStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for status, n := range transactionStatusNames {
		if n == upper {
			return status, nil
		}
	}
	return TransactionUnknown, fmt.Errorf("unknown transaction status %q", name)
}

// Transaction records a monetary movement made by a user. Actor is what caused
// it and Target is what it is about; both are optional references.
// (UserID, Actor, Date, Amount, CurrencyCode) is unique.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	UserID        string            `json:"userID"` // Required
	Actor         Ref               `json:"actor"`
	Date          time.Time         `json:"date"`
	Status        TransactionStatus `json:"status"`
	Target        Ref               `json:"target"`
	Money
	AuditFields
}
