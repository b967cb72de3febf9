package mapping

import (
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its db model.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerID:        d.LedgerID,
		ReferenceNumber: d.ReferenceNumber,
		Amount:          d.Amount,
		Description:     d.Description,
		DetailID:        d.DetailID,
		GeneralID:       d.GeneralID,
		MovementType:    models.MovementType(d.MovementType),
		LedgerDate:      d.LedgerDate,
		PostingStatus:   models.PostingStatus(d.PostingStatus),
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

// ToDomainLedgerEntry converts a db model LedgerEntry to its domain shape.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerID:        m.LedgerID,
		ReferenceNumber: m.ReferenceNumber,
		Amount:          m.Amount,
		Description:     m.Description,
		DetailID:        m.DetailID,
		GeneralID:       m.GeneralID,
		MovementType:    domain.MovementType(m.MovementType),
		LedgerDate:      m.LedgerDate,
		PostingStatus:   domain.PostingStatus(m.PostingStatus),
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}

// ToDomainLedgerEntrySlice converts db model ledger rows to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
