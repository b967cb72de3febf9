package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCategory mirrors domain.AccountCategory at the storage boundary.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// GeneralAccount is the db shape of a parent account (table account_generals).
type GeneralAccount struct {
	AccountID         string          `db:"account_id"`
	AccountNumber     string          `db:"account_number"`
	Name              string          `db:"name"`
	Category          AccountCategory `db:"category"`
	ReportGroup       string          `db:"report_group"`
	NormalSide        string          `db:"normal_side"`
	AmountCredit      decimal.Decimal `db:"amount_credit"`
	AmountDebit       decimal.Decimal `db:"amount_debit"`
	AccumulatedCredit decimal.Decimal `db:"accumulated_credit"`
	AccumulatedDebit  decimal.Decimal `db:"accumulated_debit"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// DetailAccount is the db shape of a child account (table account_details).
type DetailAccount struct {
	AccountID         string          `db:"account_id"`
	AccountNumber     string          `db:"account_number"`
	Name              string          `db:"name"`
	Category          AccountCategory `db:"category"`
	ReportGroup       string          `db:"report_group"`
	NormalSide        string          `db:"normal_side"`
	GeneralID         string          `db:"general_id"`
	AmountCredit      decimal.Decimal `db:"amount_credit"`
	AmountDebit       decimal.Decimal `db:"amount_debit"`
	AccumulatedCredit decimal.Decimal `db:"accumulated_credit"`
	AccumulatedDebit  decimal.Decimal `db:"accumulated_debit"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
