package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affiliate-bot-backend/internal/features/bot/models"
	"affiliate-bot-backend/internal/features/bot/repository"
)

func TestGetUnknownConfig(t *testing.T) {
	repo := NewBotRepository()

	_, err := repo.Get(context.Background(), 7, "twitter")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	repo := NewBotRepository()

	cfg := &models.BotConfig{
		UserID:    7,
		Platform:  "twitter",
		Keywords:  []string{"earbuds"},
		Platforms: []string{"twitter", "pinterest"},
		Active:    true,
	}
	require.NoError(t, repo.Save(context.Background(), cfg))

	got, err := repo.Get(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, []string{"earbuds"}, got.Keywords)
	assert.False(t, got.UpdatedAt.IsZero())

	// Configs are keyed per platform.
	_, err = repo.Get(context.Background(), 7, "pinterest")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	repo := NewBotRepository()

	require.NoError(t, repo.Save(context.Background(), &models.BotConfig{
		UserID:   7,
		Platform: "twitter",
		Keywords: []string{"earbuds"},
		Active:   true,
	}))

	got, err := repo.Get(context.Background(), 7, "twitter")
	require.NoError(t, err)
	got.Active = false
	got.Keywords[0] = "changed"

	stored, err := repo.Get(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.True(t, stored.Active)
	assert.Equal(t, []string{"earbuds"}, stored.Keywords)
}
