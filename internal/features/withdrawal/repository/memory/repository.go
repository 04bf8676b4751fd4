package memory

import (
	"context"
	"sync"

	"affiliate-bot-backend/internal/features/withdrawal/models"
	"affiliate-bot-backend/internal/features/withdrawal/repository"
)

type withdrawalRepository struct {
	mu      sync.RWMutex
	ledgers map[int64][]models.Withdrawal
}

func NewWithdrawalRepository() repository.WithdrawalRepository {
	return &withdrawalRepository{ledgers: make(map[int64][]models.Withdrawal)}
}

func (r *withdrawalRepository) Append(_ context.Context, w *models.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgers[w.UserID] = append([]models.Withdrawal{*w}, r.ledgers[w.UserID]...)
	return nil
}

func (r *withdrawalRepository) ListByUser(_ context.Context, userID int64, limit int) ([]models.Withdrawal, error) {
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger := r.ledgers[userID]
	if limit > len(ledger) {
		limit = len(ledger)
	}
	out := make([]models.Withdrawal, limit)
	copy(out, ledger[:limit])
	return out, nil
}
