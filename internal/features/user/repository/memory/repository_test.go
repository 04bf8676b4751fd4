package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"affiliate-bot-backend/internal/features/user/models"
	"affiliate-bot-backend/internal/features/user/repository"
)

func TestGetByIDUnknownUser(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	repo := NewUserRepository()

	first, err := repo.GetOrCreate(context.Background(), 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)

	second, err := repo.GetOrCreate(context.Background(), 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestUpdateFailureLeavesRecordUntouched(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetOrCreate(context.Background(), 1, "alice")
	require.NoError(t, err)

	_, err = repo.Update(context.Background(), 1, func(u *models.User) error {
		u.AvailableBalance = 999
		return errors.New("rejected")
	})
	require.Error(t, err)

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, user.AvailableBalance)
}

func TestUpdateReturnedCopyIsDetached(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetOrCreate(context.Background(), 1, "alice")
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), 1, func(u *models.User) error {
		u.ActivePlatforms["twitter"] = true
		return nil
	})
	require.NoError(t, err)

	updated.ActivePlatforms["pinterest"] = true
	updated.AvailableBalance = 123

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, stored.ActivePlatforms["twitter"])
	assert.False(t, stored.ActivePlatforms["pinterest"])
	assert.Zero(t, stored.AvailableBalance)
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetOrCreate(context.Background(), 1, "alice")
	require.NoError(t, err)

	const workers = 10
	const increments = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				_, err := repo.Update(context.Background(), 1, func(u *models.User) error {
					u.AvailableBalance += 1
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, float64(workers*increments), user.AvailableBalance)
}

func TestRenameRacingReaders(t *testing.T) {
	repo := NewUserRepository()

	_, err := repo.GetOrCreate(context.Background(), 1, "alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		names := []string{"alice", "bob"}
		for i := 0; i < 200; i++ {
			_, err := repo.GetOrCreate(context.Background(), 1, names[i%2])
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			user, err := repo.GetByID(context.Background(), 1)
			assert.NoError(t, err)
			assert.Contains(t, []string{"alice", "bob"}, user.Username)
		}
	}()
	wg.Wait()
}
