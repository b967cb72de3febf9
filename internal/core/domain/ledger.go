package domain

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

// PostingStatus is the lifecycle state of a ledger line or journal aggregate.
type PostingStatus string

const (
	Pending PostingStatus = "PENDING"
	Posted  PostingStatus = "POSTED"
)

// LedgerEntry is a single movement line. Lines created together share one
// ReferenceNumber and must balance as a batch (total debits == total credits).
type LedgerEntry struct {
	LedgerID        string          `json:"ledgerID"`        // Primary key (UUID)
	ReferenceNumber string          `json:"referenceNumber"` // Batch reference shared by all lines of one intake
	Amount          decimal.Decimal `json:"amount"`          // Positive, 2 fractional digits
	Description     string          `json:"description"`
	DetailID        string          `json:"detailID"`  // FK -> DetailAccount.AccountID
	GeneralID       string          `json:"generalID"` // FK -> GeneralAccount.AccountID; must equal the detail's parent
	MovementType    MovementType    `json:"movementType"`
	LedgerDate      time.Time       `json:"ledgerDate"`
	PostingStatus   PostingStatus   `json:"postingStatus"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"` // nil unless POSTED
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
