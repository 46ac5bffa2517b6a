package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the key was not present in the cache
var ErrCacheMiss = errors.New("cache miss")

// ChatCache caches serialized chat documents in Redis.
// The cache is optional at runtime; a nil *ChatCache is a no-op.
type ChatCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewChatCache creates a new Redis-backed chat cache
func NewChatCache(addr, password string, db int, ttl time.Duration) (*ChatCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("[Redis] Connected to %s", addr)
	return &ChatCache{client: client, ttl: ttl}, nil
}

func chatKey(chatID string) string {
	return "chat:" + chatID
}

// GetChat returns the cached JSON body for a chat, or ErrCacheMiss
func (c *ChatCache) GetChat(ctx context.Context, chatID string) (string, error) {
	if c == nil {
		return "", ErrCacheMiss
	}

	data, err := c.client.Get(ctx, chatKey(chatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}

	return data, nil
}

// SetChat stores the serialized chat body with the configured TTL
func (c *ChatCache) SetChat(ctx context.Context, chatID, body string) error {
	if c == nil {
		return nil
	}

	if err := c.client.Set(ctx, chatKey(chatID), body, c.ttl).Err(); err != nil {
		log.Printf("[Redis] Failed to cache chat %s: %v", chatID, err)
		return err
	}

	return nil
}

// Invalidate removes a chat from the cache. Called after every write.
func (c *ChatCache) Invalidate(ctx context.Context, chatID string) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, chatKey(chatID)).Err(); err != nil {
		log.Printf("[Redis] Failed to invalidate chat %s: %v", chatID, err)
	}
}

// Health checks if Redis is reachable
func (c *ChatCache) Health(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *ChatCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
