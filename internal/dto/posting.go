package dto

import "time"

// PostingRequest selects the target date of a posting-engine operation.
type PostingRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// PostingResult summarizes one posting run.
type PostingResult struct {
	PostedCount int       `json:"postedCount"`
	GroupCount  int       `json:"groupCount"`
	PostedAt    time.Time `json:"postedAt"`
}

// UnpostingResult summarizes one unposting run.
type UnpostingResult struct {
	UnpostedCount int       `json:"unpostedCount"`
	DeletedGroups int64     `json:"deletedGroups"`
	Timestamp     time.Time `json:"timestamp"`
}

// BalanceApplicationResult lists the account numbers touched by a balance
// application or reversal pass.
type BalanceApplicationResult struct {
	UpdatedAccounts []string `json:"updatedAccounts"`
}
