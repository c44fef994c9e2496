package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadheryan/identity-service/constant"
	goredis "github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session key is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

// RedisRepository keeps issued token sessions keyed by token id.
type RedisRepository interface {
	// Enabled reports whether a Redis client is wired in. When it is not, every call is a no-op.
	Enabled() bool
	SetSession(ctx context.Context, sessionID, accountID string, role constant.Role, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (accountID string, role constant.Role, err error)
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis-backed session store. A nil client disables it.
func NewRepository(client *goredis.Client) RedisRepository {
	return &redis{client: client}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (r *redis) Enabled() bool {
	return r.client != nil
}

// SetSession stores "role:accountID" under the session key with the token's lifetime
func (r *redis) SetSession(ctx context.Context, sessionID, accountID string, role constant.Role, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, sessionKey(sessionID), string(role)+":"+accountID, ttl).Err()
}

func (r *redis) GetSession(ctx context.Context, sessionID string) (string, constant.Role, error) {
	if r.client == nil {
		return "", "", nil
	}
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", "", ErrSessionNotFound
		}
		return "", "", err
	}

	role, accountID, ok := strings.Cut(val, ":")
	if !ok {
		return "", "", fmt.Errorf("malformed session value for %s", sessionID)
	}
	return accountID, constant.Role(role), nil
}
