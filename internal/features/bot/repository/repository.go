package repository

import (
	"context"
	"errors"

	"affiliate-bot-backend/internal/features/bot/models"
)

var ErrNotFound = errors.New("bot config not found")

// BotRepository stores bot configurations keyed by (user, platform).
type BotRepository interface {
	Get(ctx context.Context, userID int64, platform string) (*models.BotConfig, error)
	Save(ctx context.Context, cfg *models.BotConfig) error
}
