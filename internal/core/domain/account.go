package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccountStatus is the lifecycle state of a billing Account.
type AccountStatus int16

const (
	AccountUnknown   AccountStatus = 0
	AccountBilled    AccountStatus = 1
	AccountPaid      AccountStatus = 2
	AccountCancelled AccountStatus = 3
)

var accountStatusNames = map[AccountStatus]string{
	AccountUnknown:   "UNKNOWN",
	AccountBilled:    "BILLED",
	AccountPaid:      "PAID",
	AccountCancelled: "CANCELLED",
}

var accountTransitions = map[AccountStatus][]AccountStatus{
	AccountUnknown: {AccountBilled, AccountCancelled},
	AccountBilled:  {AccountPaid, AccountCancelled},
}

func (s AccountStatus) String() string {
	if name, ok := accountStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AccountStatus(%d)", int16(s))
}

// IsValid reports whether s is a declared status.
func (s AccountStatus) IsValid() bool {
	_, ok := accountStatusNames[s]
	return ok
}

// IsInitial reports whether a new account may be created in status s.
// Terminal statuses are reached only through transitions.
func (s AccountStatus) IsInitial() bool {
	return s == AccountUnknown || s == AccountBilled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range accountTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AccountStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AccountStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseAccountStatus accepts a status name in any case.
func ParseAccountStatus(name string) (AccountStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for status, n := range accountStatusNames {
		if n == upper {
			return status, nil
		}
	}
	return AccountUnknown, fmt.Errorf("unknown account status %q", name)
}

// Account is a bill: an amount owed or paid against an optional target.
type Account struct {
	AccountID   string        `json:"accountID"`
	UserID      string        `json:"userID"` // Empty when unassigned
	Date        time.Time     `json:"date"`   // Billing period date
	DateBilled  time.Time     `json:"dateBilled"`
	Status      AccountStatus `json:"status"`
	Target      Ref           `json:"target"`
	Description string        `json:"description"`
	Money
	AuditFields
}
