package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore реализация Store поверх Redis
type RedisStore struct {
	client *backend.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище из готового клиента
// ttl = 0 означает хранение без истечения
func NewRedisStore(client *backend.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient создает клиента Redis по адресу
func NewRedisClient(addr, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Get получает значение ключа
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("%w: Get %s: %v", ErrStorage, key, err)
	}
	return val, nil
}

// Set записывает значение с TTL хранилища
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set %s: %v", ErrStorage, key, err)
	}
	return nil
}

// Remove удаляет ключи одной командой DEL
func (s *RedisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Remove: %v", ErrStorage, err)
	}
	return nil
}

// Ping проверяет доступность Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrStorage, err)
	}
	return nil
}
