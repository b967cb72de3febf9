package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the db shape of a posting aggregate (table journal_entries).
// Account references are stored by number (soft foreign keys).
type JournalEntry struct {
	JournalID     string          `db:"journal_id"`
	DetailNumber  string          `db:"detail_number"`
	GeneralNumber string          `db:"general_number"`
	AmountDebit   decimal.Decimal `db:"amount_debit"`
	AmountCredit  decimal.Decimal `db:"amount_credit"`
	LedgerDate    time.Time       `db:"ledger_date"`
	PostingStatus PostingStatus   `db:"posting_status"`
	AuditFields
}
