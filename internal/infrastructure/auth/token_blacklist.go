package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "pm:token:blacklist:"

// TokenBlacklist revokes tokens before their natural expiry. Logout and
// refresh rotation revoke single tokens by JTI; a password change revokes
// every token the user was issued up to that moment.
type TokenBlacklist interface {
	// Revoke blacklists one token. ttl is the token's remaining lifetime;
	// a non-positive ttl is a no-op because the token is already dead.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeUser sets a cutoff: tokens issued to userID before now are rejected.
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	IsRevokedForUser(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist shares revocations across instances.
type RedisTokenBlacklist struct {
	client redis.Cmdable
}

// NewRedisTokenBlacklist wraps an existing client.
func NewRedisTokenBlacklist(client redis.Cmdable) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func jtiKey(jti string) string     { return blacklistKeyPrefix + "jti:" + jti }
func userKey(userID string) string { return blacklistKeyPrefix + "user:" + userID }

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// RevokeUser stores the cutoff as unix seconds.
func (b *RedisTokenBlacklist) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := b.client.Set(ctx, userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsRevokedForUser compares at second resolution, so tokens issued earlier
// in the cutoff second itself are not revoked.
func (b *RedisTokenBlacklist) IsRevokedForUser(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, userKey(userID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to check user token revocation: %w", err)
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("malformed revocation cutoff for user %s: %w", userID, err)
	}
	return issuedAt.Unix() < cutoff, nil
}

// InMemoryTokenBlacklist is the fallback when Redis is disabled. Revocations
// are local to the process and lost on restart.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> entry expiry
	cutoffs map[string]cutoff    // userID -> revocation cutoff
}

type cutoff struct {
	at      time.Time
	expires time.Time
}

// NewInMemoryTokenBlacklist returns an empty blacklist.
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:  make(map[string]time.Time),
		cutoffs: make(map[string]cutoff),
	}
}

func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.sweep(now)
	b.tokens[jti] = now.Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	expires, ok := b.tokens[jti]
	return ok && time.Now().Before(expires), nil
}

// RevokeUser records the cutoff. A non-positive ttl keeps it indefinitely.
func (b *InMemoryTokenBlacklist) RevokeUser(_ context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.sweep(now)
	c := cutoff{at: now}
	if ttl > 0 {
		c.expires = now.Add(ttl)
	}
	b.cutoffs[userID] = c
	return nil
}

func (b *InMemoryTokenBlacklist) IsRevokedForUser(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cutoffs[userID]
	if !ok || (!c.expires.IsZero() && time.Now().After(c.expires)) {
		return false, nil
	}
	return issuedAt.Unix() < c.at.Unix(), nil
}

// sweep drops lapsed entries. Callers hold mu.
func (b *InMemoryTokenBlacklist) sweep(now time.Time) {
	for jti, expires := range b.tokens {
		if now.After(expires) {
			delete(b.tokens, jti)
		}
	}
	for id, c := range b.cutoffs {
		if !c.expires.IsZero() && now.After(c.expires) {
			delete(b.cutoffs, id)
		}
	}
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
