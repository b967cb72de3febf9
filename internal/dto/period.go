package dto

import "github.com/shopspring/decimal"

// Operations reported by ClosePeriod.
const (
	OperationCreated = "created"
	OperationUpdated = "updated"
)

// ClosePeriodResult reports the computed net result for a year.
type ClosePeriodResult struct {
	NetResult decimal.Decimal `json:"netResult"`
	Operation string          `json:"operation"` // created | updated
}
