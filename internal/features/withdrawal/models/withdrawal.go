package models

import "time"

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Withdrawal is one entry in a user's payout ledger. Failed attempts are
// recorded too so the history shows what was tried.
type Withdrawal struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"user_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Destination   string    `json:"destination"`
	Fee           float64   `json:"fee"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
