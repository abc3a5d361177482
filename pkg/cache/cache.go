// Package cache 定义了显式的键值缓存接口及其 Redis 实现。
package cache

import (
	"context"
	"time"

	"book-admin-go/pkg/log"

	"github.com/go-redis/redis/v8"
)

// Store 是键值缓存的最小接口。Get 在键不存在时返回空串且无错误。
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore 创建一个基于 Redis 的 Store。
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// loggedStore 吞掉底层缓存的所有错误并记录日志。
// 调用方拿到的表现等价于"缓存里没有这个键"。
type loggedStore struct {
	inner Store
}

// Logged 包装一个 Store，使其错误只记日志、不上抛。
func Logged(inner Store) Store {
	return &loggedStore{inner: inner}
}

func (s *loggedStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.inner.Get(ctx, key)
	if err != nil {
		log.Errorf("redis操作失败 get %s: %v", key, err)
		return "", nil
	}
	return val, nil
}

func (s *loggedStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.inner.Set(ctx, key, value, ttl); err != nil {
		log.Errorf("redis操作失败 set %s: %v", key, err)
	}
	return nil
}

func (s *loggedStore) Del(ctx context.Context, key string) error {
	if err := s.inner.Del(ctx, key); err != nil {
		log.Errorf("redis操作失败 del %s: %v", key, err)
	}
	return nil
}
