package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// storedUser carries the password hash that the public JSON shape of
// domain.User deliberately drops.
type storedUser struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

func toStored(u *domain.User) *storedUser {
	return &storedUser{User: *u, PasswordHash: u.PasswordHash}
}

func (s *storedUser) toDomain() *domain.User {
	u := s.User
	u.PasswordHash = s.PasswordHash
	return &u
}

// UserRepository implements ports.UserRepository on the snapshot store.
type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

// Create inserts a new user, enforcing username uniqueness with a secondary
// index key claimed before the record is written.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	created := *u
	created.ID = uuid.NewString()

	ok, err := r.client.SetNX(ctx, usernameKey(created.Username), created.ID, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("claim username: %w", err)
	}
	if !ok {
		return nil, domain.ErrUserExists
	}
	if err := putRecord(ctx, r.client, ports.ColUsers, created.ID, toStored(&created)); err != nil {
		_ = r.client.Del(ctx, usernameKey(created.Username)).Err()
		return nil, err
	}
	return &created, nil
}

// FindByID retrieves a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s, err := getRecord[storedUser](ctx, r.client, ports.ColUsers, id)
	if err != nil {
		return nil, err
	}
	return s.toDomain(), nil
}

// FindByUsername resolves the username index, then loads the record.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	id, err := r.client.Get(ctx, usernameKey(username)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve username: %w", err)
	}
	return r.FindByID(ctx, id)
}

// Update replaces the user record. The username index is not rewritten;
// usernames are immutable after registration.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return updateRecord(ctx, r.client, ports.ColUsers, u.ID, toStored(u))
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role domain.UserRole) error {
	return mutateRecord(ctx, r.client, ports.ColUsers, id, func(s *storedUser) (bool, error) {
		s.Role = role
		return true, nil
	})
}

func (r *UserRepository) SetMuted(ctx context.Context, id string, muted bool) error {
	return mutateRecord(ctx, r.client, ports.ColUsers, id, func(s *storedUser) (bool, error) {
		s.IsMuted = muted
		return true, nil
	})
}

func (r *UserRepository) SetFrozen(ctx context.Context, id string, frozen bool) error {
	return mutateRecord(ctx, r.client, ports.ColUsers, id, func(s *storedUser) (bool, error) {
		s.IsFrozen = frozen
		return true, nil
	})
}

func usernameKey(username string) string { return "idx:username:" + username }
