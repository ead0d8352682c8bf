package services

import (
	"context"
	"time"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	"linkfolio/internal/utils"

	"github.com/google/uuid"
)

const (
	SESSION_TTL          = 7 * 24 * time.Hour
	SESSION_CACHE_PREFIX = "session:"
	SESSION_TOKEN_BYTES  = 32
)

// Session is the opaque server-side session record stored in valkey. The
// token handed to the client is only a cache key; nothing is decodable from it.
type Session struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionService struct {
	db  database.DB
	log logger.Logger
}

func NewSessionService(db database.DB) *SessionService {
	return &SessionService{
		db:  db,
		log: logger.New("SessionService"),
	}
}

// Create stores a new session and returns its token.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	log := s.log.Function("Create")

	token, err := utils.GenerateToken(SESSION_TOKEN_BYTES)
	if err != nil {
		return "", log.Err("failed to generate session token", err)
	}

	session := Session{
		UserID:    userID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := database.NewCacheBuilder(s.db.Cache.Session, SESSION_CACHE_PREFIX+token).
		WithStruct(session).
		WithTTL(SESSION_TTL).
		WithContext(ctx).
		Set(); err != nil {
		return "", log.Err("failed to store session", err, "userID", userID)
	}

	return token, nil
}

// Get resolves a session token. A missing or expired token returns (nil, nil).
func (s *SessionService) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	var session Session
	found, err := database.NewCacheBuilder(s.db.Cache.Session, SESSION_CACHE_PREFIX+token).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return nil, s.log.Function("Get").Err("failed to get session", err)
	}
	if !found {
		return nil, nil
	}

	return &session, nil
}

func (s *SessionService) Delete(ctx context.Context, token string) error {
	log := s.log.Function("Delete")

	if err := database.NewCacheBuilder(s.db.Cache.Session, SESSION_CACHE_PREFIX+token).
		WithContext(ctx).
		Delete(); err != nil {
		return log.Err("failed to delete session", err)
	}

	return nil
}
