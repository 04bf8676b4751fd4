package repository

import (
	"context"

	"affiliate-bot-backend/internal/features/withdrawal/models"
)

// WithdrawalRepository is an append-only per-user ledger, newest first.
type WithdrawalRepository interface {
	Append(ctx context.Context, w *models.Withdrawal) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Withdrawal, error)
}
