package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window the failures are counted in
	BlockDuration time.Duration // how long a block lasts
	UseIPTracking bool          // also count and block by client IP
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker counts failed logins per identifier (and IP) in Redis and
// blocks further attempts once the limit is reached. With a nil client every
// method is a no-op, so login keeps working without Redis.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	return &LoginTracker{client: client, config: config, logger: logger}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	failLoginIPPrefix      = "fail:login:ip:"
	blockedLoginUserPrefix = "blocked:login:user:"
	blockedLoginIPPrefix   = "blocked:login:ip:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the new count.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// Identifiers are case-insensitive for tracking so "Alice" and "alice" share a counter.
func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// IsBlocked checks if the given identifier or IP is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, identifier, ip string) (bool, error) {
	if lt == nil || lt.client == nil {
		return false, nil
	}

	keys := []string{blockedLoginUserPrefix + normalizeIdentifier(identifier)}
	if lt.config.UseIPTracking && ip != "" {
		keys = append(keys, blockedLoginIPPrefix+ip)
	}

	exists, err := lt.client.Exists(ctx, keys...).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt records a failed login attempt and returns whether the
// identifier is now blocked, plus the current attempt count.
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, identifier, ip, userAgent, requestID, reason string) (bool, int, error) {
	if lt == nil {
		return false, 0, nil
	}
	lt.logger.LogLoginFailed(ctx, identifier, ip, userAgent, requestID, reason)
	if lt.client == nil {
		return false, 0, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	id := normalizeIdentifier(identifier)

	userCount, err := lt.atomicIncrement(ctx, failLoginUserPrefix+id, ttlSeconds)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment user counter: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_, _ = lt.atomicIncrement(ctx, failLoginIPPrefix+ip, ttlSeconds)
	}

	if userCount >= lt.config.MaxAttempts {
		if err := lt.createBlock(ctx, id, ip); err != nil {
			return true, userCount, fmt.Errorf("failed to create block: %w", err)
		}
		return true, userCount, nil
	}
	return false, userCount, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (lt *LoginTracker) createBlock(ctx context.Context, identifier, ip string) error {
	blockTTL := lt.config.BlockDuration

	if err := lt.client.Set(ctx, blockedLoginUserPrefix+identifier, "1", blockTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user block: %w", err)
	}
	if lt.config.UseIPTracking && ip != "" {
		// The identifier is already blocked; an IP block failure is not fatal.
		_ = lt.client.Set(ctx, blockedLoginIPPrefix+ip, "1", blockTTL).Err()
	}

	lt.logger.LogBlockCreated(ctx, identifier, ip, int(blockTTL.Minutes()))
	return nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, identifier, ip string) error {
	if lt == nil || lt.client == nil {
		return nil
	}

	if err := lt.client.Del(ctx, failLoginUserPrefix+normalizeIdentifier(identifier)).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}
	if lt.config.UseIPTracking && ip != "" {
		_ = lt.client.Del(ctx, failLoginIPPrefix+ip).Err()
	}
	return nil
}
