package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the per-account, per-date aggregate produced by a posting
// run: one row per (detail account, ledger date) group, carrying the summed
// debit and credit totals of the ledger lines that produced it.
//
// Accounts are referenced by number, not surrogate id. This is a soft
// foreign key: existence must be checked explicitly at every read.
type JournalEntry struct {
	JournalID     string          `json:"journalID"` // Primary key (UUID)
	DetailNumber  string          `json:"detailNumber"`
	GeneralNumber string          `json:"generalNumber"`
	AmountDebit   decimal.Decimal `json:"amountDebit"`
	AmountCredit  decimal.Decimal `json:"amountCredit"`
	LedgerDate    time.Time       `json:"ledgerDate"`
	PostingStatus PostingStatus   `json:"postingStatus"` // PENDING until balances are applied
	AuditFields
}
