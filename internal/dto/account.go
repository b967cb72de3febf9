package dto

import (
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGeneralAccountRequest creates a parent account.
type CreateGeneralAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ReportGroup   string `json:"reportGroup" binding:"required,oneof=BALANCE_SHEET RESULT"`
	NormalSide    string `json:"normalSide" binding:"required,oneof=DEBIT CREDIT"`
}

// CreateDetailAccountRequest creates a child account under a general account.
type CreateDetailAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ReportGroup   string `json:"reportGroup" binding:"required,oneof=BALANCE_SHEET RESULT"`
	NormalSide    string `json:"normalSide" binding:"required,oneof=DEBIT CREDIT"`
	GeneralNumber string `json:"generalNumber" binding:"required"`
}

// UpdateAccountRequest updates descriptive fields of either account kind.
// Nil fields are left untouched.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ReportGroup *string `json:"reportGroup,omitempty" binding:"omitempty,oneof=BALANCE_SHEET RESULT"`
	NormalSide  *string `json:"normalSide,omitempty" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// AccountResponse is the outward shape of either account kind.
type AccountResponse struct {
	AccountID         string          `json:"accountID"`
	AccountNumber     string          `json:"accountNumber"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	ReportGroup       string          `json:"reportGroup"`
	NormalSide        string          `json:"normalSide"`
	GeneralID         string          `json:"generalID,omitempty"` // Only set for detail accounts
	AmountCredit      decimal.Decimal `json:"amountCredit"`
	AmountDebit       decimal.Decimal `json:"amountDebit"`
	AccumulatedCredit decimal.Decimal `json:"accumulatedCredit"`
	AccumulatedDebit  decimal.Decimal `json:"accumulatedDebit"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

func toAccountResponse(b domain.AccountBase) AccountResponse {
	return AccountResponse{
		AccountID:         b.AccountID,
		AccountNumber:     b.AccountNumber,
		Name:              b.Name,
		Category:          string(b.Category),
		ReportGroup:       string(b.ReportGroup),
		NormalSide:        string(b.NormalSide),
		AmountCredit:      b.AmountCredit,
		AmountDebit:       b.AmountDebit,
		AccumulatedCredit: b.AccumulatedCredit,
		AccumulatedDebit:  b.AccumulatedDebit,
		CreatedAt:         b.CreatedAt,
		LastUpdatedAt:     b.LastUpdatedAt,
	}
}

// ToGeneralAccountResponse converts a domain general account.
func ToGeneralAccountResponse(a domain.GeneralAccount) AccountResponse {
	return toAccountResponse(a.AccountBase)
}

// ToDetailAccountResponse converts a domain detail account.
func ToDetailAccountResponse(a domain.DetailAccount) AccountResponse {
	resp := toAccountResponse(a.AccountBase)
	resp.GeneralID = a.GeneralID
	return resp
}
