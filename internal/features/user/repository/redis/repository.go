package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"affiliate-bot-backend/internal/features/user/models"
	"affiliate-bot-backend/internal/features/user/repository"
)

const updateMaxRetries = 5

type userRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	data, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetOrCreate(ctx context.Context, id int64, username string) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err == nil {
		if username != "" && user.Username != username {
			return r.Update(ctx, id, func(u *models.User) error {
				u.Username = username
				return nil
			})
		}
		return user, nil
	}
	if err != repository.ErrNotFound {
		return nil, err
	}

	now := time.Now()
	newUser := &models.User{
		ID:              id,
		Username:        username,
		ActivePlatforms: make(map[string]bool),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	data, err := json.Marshal(newUser)
	if err != nil {
		return nil, err
	}

	// SetNX so a concurrent first access does not clobber an existing record.
	ok, err := r.client.SetNX(ctx, userKey(id), data, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return r.GetByID(ctx, id)
	}
	return newUser, nil
}

// Update runs fn against the current record under optimistic locking.
// WATCH aborts the transaction when another writer touches the key, and the
// whole read-modify-write is retried, so per-user updates are serializable.
func (r *userRepository) Update(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error) {
	key := userKey(id)

	for attempt := 0; attempt < updateMaxRetries; attempt++ {
		var updated *models.User

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if err == redis.Nil {
					return repository.ErrNotFound
				}
				return err
			}

			var user models.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			if user.ActivePlatforms == nil {
				user.ActivePlatforms = make(map[string]bool)
			}

			if err := fn(&user); err != nil {
				return err
			}
			user.UpdatedAt = time.Now()

			buf, err := json.Marshal(&user)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, buf, 0)
				return nil
			})
			if err == nil {
				updated = &user
			}
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("user %d update: too many conflicts", id)
}
