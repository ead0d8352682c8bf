package repositories

import (
	"context"
	"time"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	. "linkfolio/internal/models"

	"github.com/google/uuid"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user:"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found, err := r.getCacheByID(ctx, id, &user); err == nil && found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).Preload("Profile").First(&user, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get user", err, "userID", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	var user User
	if err := r.db.SQLWithContext(ctx).Preload("Profile").First(&user, "email = ?", email).Error; err != nil {
		return nil, log.Err("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	if err := r.clearUserCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

// Delete removes the user row. Dependent rows (profile, links, tracks,
// badges) are removed by the storage layer's cascade constraints.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Unscoped().Delete(&User{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete user", err, "userID", id)
	}

	if err := r.clearUserCache(ctx, id); err != nil {
		log.Warn("failed to clear user cache after delete", "userID", id, "error", err)
	}

	return nil
}

// cachedUser is the cache serialization of a User. The model excludes
// PasswordHash from JSON so it never leaks into API responses, but the cache
// is server-side only and the hash must survive the round trip — password
// step-up checks run against users resolved through this cache.
type cachedUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}

func (r *userRepository) getCacheByID(ctx context.Context, userID uuid.UUID, user *User) (bool, error) {
	cacheKey := USER_CACHE_PREFIX + userID.String()

	var record cachedUser
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Get(&record)
	if err != nil || !found {
		return found, err
	}

	*user = record.User
	user.PasswordHash = record.PasswordHash
	return true, nil
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	cacheKey := USER_CACHE_PREFIX + user.ID.String()
	return database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(cachedUser{User: *user, PasswordHash: user.PasswordHash}).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *userRepository) clearUserCache(ctx context.Context, userID uuid.UUID) error {
	cacheKey := USER_CACHE_PREFIX + userID.String()
	return database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Delete()
}
