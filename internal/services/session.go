package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daybookhq/daybook-backend/internal/models"
)

const (
	// SessionDuration is how long a login stays valid.
	SessionDuration = 7 * 24 * time.Hour
	// sessionKeyPrefix is the Redis key prefix for sessions.
	sessionKeyPrefix = "session:"
)

// SessionStore keeps authenticated identities in Redis, keyed by an opaque
// session token handed to the client as a cookie.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a session store on an existing Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, ttl: SessionDuration}
}

// Create stores the identity under a fresh random token and returns the token.
func (s *SessionStore) Create(ctx context.Context, identity models.Identity) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Validate looks up a session token. The second return value is false when
// the token is empty, unknown or expired.
func (s *SessionStore) Validate(ctx context.Context, token string) (models.Identity, bool, error) {
	if token == "" {
		return models.Identity{}, false, nil
	}

	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("lookup session: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(payload), &identity); err != nil {
		return models.Identity{}, false, fmt.Errorf("unmarshal identity: %w", err)
	}
	return identity, true, nil
}

// Invalidate removes a session. Unknown tokens are not an error.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
