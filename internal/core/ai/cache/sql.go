package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutriai/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS resolution_cache (
	cache_key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLStore 以資料表保存學習結果，可用於 sqlite 或 postgres
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore 建立資料表並回傳快取
func NewSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		return nil, fmt.Errorf("failed to create resolution_cache table: %w", err)
	}
	common.LogInfo("快取管理員已初始化",
		zap.String("driver", "sql"),
		zap.String("dialect", db.DriverName()),
	)
	return &SQLStore{db: db}, nil
}

// Get 獲取緩存
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT value FROM resolution_cache WHERE cache_key = ?"), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Put 寫入或覆寫
func (s *SQLStore) Put(ctx context.Context, key, value string) error {
	query := s.db.Rebind(`INSERT INTO resolution_cache (cache_key, value) VALUES (?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET value = excluded.value`)
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// PutIfAbsent 衝突時不寫入，並讀回既有值
func (s *SQLStore) PutIfAbsent(ctx context.Context, key, value string) (string, bool, error) {
	query := s.db.Rebind(`INSERT INTO resolution_cache (cache_key, value) VALUES (?, ?)
		ON CONFLICT (cache_key) DO NOTHING`)
	res, err := s.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return "", false, fmt.Errorf("failed to insert cache: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return value, true, nil
	}
	existing, err := s.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return existing, false, nil
}

// Close 資料庫連線由呼叫端管理
func (s *SQLStore) Close() error {
	return nil
}
