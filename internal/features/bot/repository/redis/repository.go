package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"affiliate-bot-backend/internal/features/bot/models"
	"affiliate-bot-backend/internal/features/bot/repository"
)

type botRepository struct {
	client *redis.Client
}

func NewBotRepository(client *redis.Client) repository.BotRepository {
	return &botRepository{client: client}
}

func botKey(userID int64, platform string) string {
	return fmt.Sprintf("bot:%s", models.Key(userID, platform))
}

func (r *botRepository) Get(ctx context.Context, userID int64, platform string) (*models.BotConfig, error) {
	data, err := r.client.Get(ctx, botKey(userID, platform)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var cfg models.BotConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *botRepository) Save(ctx context.Context, cfg *models.BotConfig) error {
	cfg.UpdatedAt = time.Now()
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, botKey(cfg.UserID, cfg.Platform), data, 0).Err()
}
