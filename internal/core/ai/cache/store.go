package cache

import (
	"context"
	"errors"
	"fmt"

	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrCacheMiss 快取中沒有該鍵
var ErrCacheMiss = errors.New("cache miss")

// IgnoreMarker 記錄某名稱不是可計算營養的食材，為可快取的終態結果
const IgnoreMarker = "IGNORE"

// 快取鍵命名空間
const (
	NamespaceNutrient   = "nutrient"
	NamespaceUnitWeight = "unitweight"
)

// Store 學習快取的持久化介面
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	// PutIfAbsent 以先寫者為準；回傳最終儲存的值與本次是否寫入
	PutIfAbsent(ctx context.Context, key, value string) (stored string, inserted bool, err error)
	Close() error
}

// StatsReporter 可回報命中統計的快取
type StatsReporter interface {
	GetStats() map[string]interface{}
}

// Stats 回傳快取統計；不支援統計的實作回傳 nil
func Stats(s Store) map[string]interface{} {
	if r, ok := s.(StatsReporter); ok {
		return r.GetStats()
	}
	return nil
}

// Key 組合命名空間與鍵
func Key(namespace, key string) string {
	return namespace + ":" + key
}

// New 依設定建立快取；sql 驅動共用傳入的資料庫連線
func New(ctx context.Context, cfg *config.CacheConfig, db *sqlx.DB) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewManager(cfg), nil
	case "redis":
		return NewRedisStore(ctx, cfg)
	case "sql":
		if db == nil {
			return nil, fmt.Errorf("sql cache requires a database connection")
		}
		return NewSQLStore(ctx, db)
	}
	return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
}

// Learner 實作「只學一次」：快取未命中時合併同鍵的並發推導，結果寫入快取
type Learner struct {
	store Store
	group singleflight.Group
}

// NewLearner 建立 Learner
func NewLearner(store Store) *Learner {
	return &Learner{store: store}
}

// Lookup 讀取快取；值無法通過 valid 檢查時視為未命中
func (l *Learner) Lookup(ctx context.Context, key string, valid func(string) bool) (string, bool) {
	value, err := l.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.String("鍵", key), zap.Error(err))
		}
		return "", false
	}
	if !valid(value) {
		common.LogWarn("快取內容無效，重新推導", zap.String("鍵", key))
		return "", false
	}
	return value, true
}

// Learn 快取未命中時呼叫 derive，並把結果寫入快取；同鍵的並發呼叫只會推導一次
func (l *Learner) Learn(ctx context.Context, key string, valid func(string) bool, derive func(context.Context) (string, error)) (string, error) {
	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		if cached, ok := l.Lookup(ctx, key, valid); ok {
			return cached, nil
		}

		value, err := derive(ctx)
		if err != nil {
			return "", err
		}

		stored, inserted, err := l.store.PutIfAbsent(ctx, key, value)
		if err != nil {
			common.LogWarn("快取寫入失敗", zap.String("鍵", key), zap.Error(err))
			return value, nil
		}
		if inserted {
			common.LogInfo("已學習新項目", zap.String("鍵", key))
			return value, nil
		}
		if valid(stored) {
			return stored, nil
		}
		// 既有內容損毀，覆寫
		if err := l.store.Put(ctx, key, value); err != nil {
			common.LogWarn("快取覆寫失敗", zap.String("鍵", key), zap.Error(err))
		}
		return value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
