package mapping

import (
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its db model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalID:     d.JournalID,
		DetailNumber:  d.DetailNumber,
		GeneralNumber: d.GeneralNumber,
		AmountDebit:   d.AmountDebit,
		AmountCredit:  d.AmountCredit,
		LedgerDate:    d.LedgerDate,
		PostingStatus: models.PostingStatus(d.PostingStatus),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a db model JournalEntry to its domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:     m.JournalID,
		DetailNumber:  m.DetailNumber,
		GeneralNumber: m.GeneralNumber,
		AmountDebit:   m.AmountDebit,
		AmountCredit:  m.AmountCredit,
		LedgerDate:    m.LedgerDate,
		PostingStatus: domain.PostingStatus(m.PostingStatus),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts db model journal rows to domain entries.
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
