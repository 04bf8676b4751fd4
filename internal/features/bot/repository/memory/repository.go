package memory

import (
	"context"
	"sync"
	"time"

	"affiliate-bot-backend/internal/features/bot/models"
	"affiliate-bot-backend/internal/features/bot/repository"
)

type botRepository struct {
	mu   sync.RWMutex
	bots map[string]*models.BotConfig
}

func NewBotRepository() repository.BotRepository {
	return &botRepository{bots: make(map[string]*models.BotConfig)}
}

func (r *botRepository) Get(ctx context.Context, userID int64, platform string) (*models.BotConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.bots[models.Key(userID, platform)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *cfg
	c.Keywords = append([]string(nil), cfg.Keywords...)
	c.Platforms = append([]string(nil), cfg.Platforms...)
	return &c, nil
}

func (r *botRepository) Save(ctx context.Context, cfg *models.BotConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg.UpdatedAt = time.Now()
	c := *cfg
	c.Keywords = append([]string(nil), cfg.Keywords...)
	c.Platforms = append([]string(nil), cfg.Platforms...)
	r.bots[models.Key(cfg.UserID, cfg.Platform)] = &c
	return nil
}
