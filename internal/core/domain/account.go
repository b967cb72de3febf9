package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCategory classifies an account by its economic nature.
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "ASSET"
	CategoryLiability AccountCategory = "LIABILITY"
	CategoryEquity    AccountCategory = "EQUITY"
	CategoryRevenue   AccountCategory = "REVENUE"
	CategoryExpense   AccountCategory = "EXPENSE"
)

// ReportGroup places an account on the balance sheet or the result statement.
type ReportGroup string

const (
	ReportBalanceSheet ReportGroup = "BALANCE_SHEET"
	ReportResult       ReportGroup = "RESULT"
)

// NormalSide is the side on which an account naturally increases.
type NormalSide string

const (
	NormalDebit  NormalSide = "DEBIT"
	NormalCredit NormalSide = "CREDIT"
)

// AccountBase holds the fields shared by general and detail accounts.
// AmountCredit/AmountDebit are cumulative totals owned by the balance
// engines; nothing else writes them. AccumulatedCredit/AccumulatedDebit
// form the secondary pair used for period-level totals.
type AccountBase struct {
	AccountID         string          `json:"accountID"`     // Primary key (UUID)
	AccountNumber     string          `json:"accountNumber"` // Unique among non-deleted accounts
	Name              string          `json:"name"`
	Category          AccountCategory `json:"category"`
	ReportGroup       ReportGroup     `json:"reportGroup"`
	NormalSide        NormalSide      `json:"normalSide"`
	AmountCredit      decimal.Decimal `json:"amountCredit"`
	AmountDebit       decimal.Decimal `json:"amountDebit"`
	AccumulatedCredit decimal.Decimal `json:"accumulatedCredit"`
	AccumulatedDebit  decimal.Decimal `json:"accumulatedDebit"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // nil = active
}

// Active reports whether the account has not been soft-deleted.
func (a AccountBase) Active() bool {
	return a.DeletedAt == nil
}

// GeneralAccount is a parent account in the chart of accounts.
type GeneralAccount struct {
	AccountBase
}

// DetailAccount is a child account; every ledger movement targets exactly
// one detail account. GeneralID must always resolve to a non-deleted
// general account.
type DetailAccount struct {
	AccountBase
	GeneralID string `json:"generalID"` // FK -> GeneralAccount.AccountID (Not Null)
}
