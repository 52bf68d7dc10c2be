package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"authgate/internal/common"
	"authgate/internal/domain/model"
)

// memoryUserRepository keeps users in a map with the same conflict and
// not-found semantics as the postgres implementation. The mutex serializes
// the uniqueness check with the insert, mirroring what the database
// constraint guarantees. Intended for tests.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{nextID: 1, users: make(map[int64]*model.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(func(u *model.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(func(u *model.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(func(u *model.User) bool { return u.ID == id })
}

func (r *memoryUserRepository) findOne(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) UpdateActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	now := time.Now()
	u.IsActive = active
	u.UpdatedAt = &now
	copied := *u
	return &copied, nil
}
