package domain

import "github.com/shopspring/decimal"

// PeriodResult is the computed net result (revenue minus expense) for one
// year, written against a designated equity detail account. Once Closed is
// set, the row and the linked account's accumulation pair are frozen.
type PeriodResult struct {
	PeriodID       string          `json:"periodID"` // Primary key (UUID)
	Year           int             `json:"year"`     // Unique
	Amount         decimal.Decimal `json:"amount"`   // Signed net result
	EquityDetailID string          `json:"equityDetailID"`
	Closed         bool            `json:"closed"` // One-way lock
	AuditFields
}
