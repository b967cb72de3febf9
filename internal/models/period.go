package models

import "github.com/shopspring/decimal"

// PeriodResult is the db shape of a yearly net result row (table period_results).
type PeriodResult struct {
	PeriodID       string          `db:"period_id"`
	Year           int             `db:"year"`
	Amount         decimal.Decimal `db:"amount"`
	EquityDetailID string          `db:"equity_detail_id"`
	Closed         bool            `db:"closed"`
	AuditFields
}
