package cache

import (
	"context"
	"errors"
	"fmt"

	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 保存學習結果，不設過期時間
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 創建 Redis 快取並測試連線
func NewRedisStore(ctx context.Context, cfg *config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("driver", "redis"),
		zap.String("addr", cfg.Redis.Addr),
	)
	return &RedisStore{client: client, prefix: cfg.KeyPrefix}, nil
}

// NewRedisStoreWithClient 使用既有連線
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Put 設置緩存
func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// PutIfAbsent 使用 SETNX，未寫入時讀回既有值
func (s *RedisStore) PutIfAbsent(ctx context.Context, key, value string) (string, bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, value, 0).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to setnx cache: %w", err)
	}
	if ok {
		return value, true, nil
	}
	existing, err := s.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return existing, false, nil
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
