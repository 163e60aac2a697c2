package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"guzo_backend/internal/config"
)

// Cache - тонкая JSON-обертка над Redis для explore-агрегатов
// (категории, локации, featured). Nil-safe: методы на nil-кэше
// ведут себя как промах, сервисы работают и без Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New подключается к Redis из конфига. Если кэш выключен,
// возвращает (nil, nil) - сервисы обязаны это переживать.
func New(cfg *config.Config) (*Cache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := time.Duration(cfg.Redis.TTLSec) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Get декодирует закэшированный JSON в dest. Возвращает false при
// промахе, ошибке Redis или битом значении.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

// Set сериализует value в JSON и пишет с дефолтным TTL.
// Ошибки глотаются: кэш не должен ронять запрос.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, raw, c.ttl)
}

// Invalidate удаляет ключи (например после approve предложения).
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
