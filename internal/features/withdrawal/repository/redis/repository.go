package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"affiliate-bot-backend/internal/features/withdrawal/models"
	"affiliate-bot-backend/internal/features/withdrawal/repository"
)

type withdrawalRepository struct {
	client *redis.Client
}

func NewWithdrawalRepository(client *redis.Client) repository.WithdrawalRepository {
	return &withdrawalRepository{client: client}
}

func ledgerKey(userID int64) string {
	return fmt.Sprintf("withdrawals:%d", userID)
}

// Append pushes to the head of the list so reads come back newest first.
func (r *withdrawalRepository) Append(ctx context.Context, w *models.Withdrawal) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return r.client.LPush(ctx, ledgerKey(w.UserID), data).Err()
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Withdrawal, error) {
	if limit <= 0 {
		limit = 50
	}

	values, err := r.client.LRange(ctx, ledgerKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	withdrawals := make([]models.Withdrawal, 0, len(values))
	for _, value := range values {
		var w models.Withdrawal
		if err := json.Unmarshal([]byte(value), &w); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}
