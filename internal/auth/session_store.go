package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parampara/internal/cache"
)

const refreshTokenKeyPrefix = "session:refresh:"

// SessionStoreInterface defines refresh-session storage operations.
type SessionStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, username string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// SessionStore keeps refresh sessions in Redis keyed by token ID.
type SessionStore struct {
	cache *cache.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

type sessionRecord struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreRefreshToken stores a refresh session with TTL.
func (s *SessionStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves a refresh session.
func (s *SessionStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return 0, "", fmt.Errorf("refresh token not found")
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, "", fmt.Errorf("unmarshal session: %w", err)
	}
	return rec.UserID, rec.Username, nil
}

// DeleteRefreshToken ends a refresh session.
func (s *SessionStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
