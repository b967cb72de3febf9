package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType indicates whether a ledger line is a debit or a credit.
type MovementType string

const (
	Debit  MovementType = "DEBIT"
	Credit MovementType = "CREDIT"
)

// PostingStatus is the stored lifecycle state of ledger lines and journal rows.
type PostingStatus string

const (
	Pending PostingStatus = "PENDING"
	Posted  PostingStatus = "POSTED"
)

// LedgerEntry is the db shape of a movement line (table ledgers).
type LedgerEntry struct {
	LedgerID        string          `db:"ledger_id"`
	ReferenceNumber string          `db:"reference_number"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	DetailID        string          `db:"detail_id"`
	GeneralID       string          `db:"general_id"`
	MovementType    MovementType    `db:"movement_type"`
	LedgerDate      time.Time       `db:"ledger_date"`
	PostingStatus   PostingStatus   `db:"posting_status"`
	PostedAt        *time.Time      `db:"posted_at"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
