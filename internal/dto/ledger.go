package dto

import (
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLineRequest is one proposed movement line of a batch.
type LedgerLineRequest struct {
	DetailID     string          `json:"detailID" binding:"required"`
	GeneralID    string          `json:"generalID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
	MovementType string          `json:"movementType" binding:"required,movementtype"`
	LedgerDate   time.Time       `json:"ledgerDate" binding:"required"`
}

// SubmitBatchRequest carries the ordered lines of one intake batch.
type SubmitBatchRequest struct {
	Lines []LedgerLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// SubmitBatchResult reports a persisted batch.
type SubmitBatchResult struct {
	BatchRef string `json:"batchRef"`
	Count    int    `json:"count"`
}

// LedgerEntryResponse is the outward shape of a ledger line.
type LedgerEntryResponse struct {
	LedgerID        string          `json:"ledgerID"`
	ReferenceNumber string          `json:"referenceNumber"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	DetailID        string          `json:"detailID"`
	GeneralID       string          `json:"generalID"`
	MovementType    string          `json:"movementType"`
	LedgerDate      time.Time       `json:"ledgerDate"`
	PostingStatus   string          `json:"postingStatus"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
}

// ToLedgerEntryResponse converts a domain ledger entry to its response shape.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerID:        e.LedgerID,
		ReferenceNumber: e.ReferenceNumber,
		Amount:          e.Amount,
		Description:     e.Description,
		DetailID:        e.DetailID,
		GeneralID:       e.GeneralID,
		MovementType:    string(e.MovementType),
		LedgerDate:      e.LedgerDate,
		PostingStatus:   string(e.PostingStatus),
		PostedAt:        e.PostedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain ledger entries.
func ToLedgerEntryResponses(es []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(es))
	for i, e := range es {
		out[i] = ToLedgerEntryResponse(e)
	}
	return out
}
