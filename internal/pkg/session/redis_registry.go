package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry 会话表存放在 redis, key 随会话过期
type RedisRegistry struct {
	client *redis.Client
	prefix string
}

// NewRedisRegistry 连接 redis 并校验连通性
func NewRedisRegistry(ctx context.Context, redisURL string) (*RedisRegistry, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisRegistryWithClient(client), nil
}

func NewRedisRegistryWithClient(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client, prefix: "session:"}
}

func (r *RedisRegistry) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisRegistry) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("lookup session: %w", err)
	}
	return n > 0, nil
}

func (r *RedisRegistry) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
