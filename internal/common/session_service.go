package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"khola-chithi/engine/internal/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionData represents a logged-in viewer's session.
type SessionData struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Email     string         `json:"email"`
	Username  string         `json:"username"`
	Role      constants.Role `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// SessionService manages viewer sessions in Redis
type SessionService struct {
	redis *redis.Client
}

func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{redis: redis}
}

func sessionKey(sessionID string) string {
	return string(constants.CachePrefixSession) + sessionID
}

// CreateSession creates a new session for a user
func (s *SessionService) CreateSession(ctx context.Context, userID, email, username string, role constants.Role) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		Username:  username,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), data, 7*24*time.Hour).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

// GetSession retrieves a session by id.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, errors.New("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.redis.Del(ctx, sessionKey(sessionID)).Err()
		return nil, errors.New("session expired")
	}
	return &session, nil
}

// DeleteSession logs the viewer out.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}
