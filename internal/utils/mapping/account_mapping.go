package mapping

import (
	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	targetKind, targetID := ToModelRef(d.Target)
	return models.Account{
		AccountID:    d.AccountID,
		UserID:       NullableString(d.UserID),
		BillDate:     domain.TruncateToDate(d.Date),
		DateBilled:   domain.TruncateToDate(d.DateBilled),
		Status:       int16(d.Status),
		TargetKind:   targetKind,
		TargetID:     targetID,
		Description:  d.Description,
		Amount:       d.Amount,
		CurrencyCode: NullableString(d.CurrencyCode),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		UserID:      StringValue(m.UserID),
		Date:        m.BillDate,
		DateBilled:  m.DateBilled,
		Status:      domain.AccountStatus(m.Status),
		Target:      ToDomainRef(m.TargetKind, m.TargetID),
		Description: m.Description,
		Money: domain.Money{
			Amount:       m.Amount,
			CurrencyCode: StringValue(m.CurrencyCode),
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
