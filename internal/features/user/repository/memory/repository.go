package memory

import (
	"context"
	"sync"
	"time"

	"affiliate-bot-backend/internal/features/user/models"
	"affiliate-bot-backend/internal/features/user/repository"
)

// userRepository is the in-memory store used in tests and as a fallback
// backend. A per-user mutex serializes Update calls for the same key, which
// is what makes a withdrawal racing a background earnings update safe.
type userRepository struct {
	mu    sync.Mutex
	users map[int64]*models.User
	locks map[int64]*sync.Mutex
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users: make(map[int64]*models.User),
		locks: make(map[int64]*sync.Mutex),
	}
}

func (r *userRepository) userLock(id int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *userRepository) GetOrCreate(ctx context.Context, id int64, username string) (*models.User, error) {
	lock := r.userLock(id)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	user, ok := r.users[id]
	r.mu.Unlock()
	if ok {
		// Renames go through the same clone-and-swap as Update; records in
		// the map are never mutated in place, so GetByID clones safely.
		if username != "" && user.Username != username {
			draft := cloneUser(user)
			draft.Username = username
			draft.UpdatedAt = time.Now()
			r.mu.Lock()
			r.users[id] = draft
			r.mu.Unlock()
			return cloneUser(draft), nil
		}
		return cloneUser(user), nil
	}

	now := time.Now()
	user = &models.User{
		ID:              id,
		Username:        username,
		ActivePlatforms: make(map[string]bool),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.mu.Lock()
	r.users[id] = user
	r.mu.Unlock()
	return cloneUser(user), nil
}

func (r *userRepository) Update(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error) {
	lock := r.userLock(id)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	current, ok := r.users[id]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}

	// fn runs against a copy so a failing update leaves the record untouched.
	draft := cloneUser(current)
	if err := fn(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = time.Now()

	r.mu.Lock()
	r.users[id] = draft
	r.mu.Unlock()
	return cloneUser(draft), nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.ActivePlatforms = make(map[string]bool, len(u.ActivePlatforms))
	for k, v := range u.ActivePlatforms {
		c.ActivePlatforms[k] = v
	}
	c.ActivityLog = append([]models.ActivityEntry(nil), u.ActivityLog...)
	return &c
}
