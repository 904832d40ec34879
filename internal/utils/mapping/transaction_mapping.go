package mapping

import (
	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/SscSPs/money_billing/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	actorKind, actorID := ToModelRef(d.Actor)
	targetKind, targetID := ToModelRef(d.Target)
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		ActorKind:     actorKind,
		ActorID:       actorID,
		TxDate:        d.Date,
		Status:        int16(d.Status),
		TargetKind:    targetKind,
		TargetID:      targetID,
		Amount:        d.Amount,
		CurrencyCode:  NullableString(d.CurrencyCode),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Actor:         ToDomainRef(m.ActorKind, m.ActorID),
		Date:          m.TxDate,
		Status:        domain.TransactionStatus(m.Status),
		Target:        ToDomainRef(m.TargetKind, m.TargetID),
		Money: domain.Money{
			Amount:       m.Amount,
			CurrencyCode: StringValue(m.CurrencyCode),
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
