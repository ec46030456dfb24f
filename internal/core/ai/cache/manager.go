package cache

import (
	"context"
	"sync"
	"time"

	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 記憶體快取，maxSize 為 0 時不限容量
type Manager struct {
	maxSize int
	mu      sync.RWMutex
	store   map[string]cacheEntry
	stats   cacheStats
}

type cacheEntry struct {
	value       string
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	writes    int64
}

// NewManager 創建新的記憶體快取
func NewManager(cfg *config.CacheConfig) *Manager {
	m := &Manager{
		maxSize: cfg.MaxSize,
		store:   make(map[string]cacheEntry),
	}
	common.LogInfo("快取管理員已初始化",
		zap.String("driver", "memory"),
		zap.Int("最大容量", cfg.MaxSize),
	)
	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[key]
	if !ok {
		m.stats.misses++
		return "", ErrCacheMiss
	}
	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++
	return entry.value, nil
}

// Put 寫入或覆寫
func (m *Manager) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists {
		m.makeRoom()
	}
	m.set(key, value)
	return nil
}

// PutIfAbsent 僅在鍵不存在時寫入
func (m *Manager) PutIfAbsent(ctx context.Context, key, value string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, exists := m.store[key]; exists {
		return entry.value, false, nil
	}
	m.makeRoom()
	m.set(key, value)
	return value, true, nil
}

func (m *Manager) set(key, value string) {
	now := time.Now()
	m.store[key] = cacheEntry{
		value:      value,
		createdAt:  now,
		lastAccess: now,
	}
	m.stats.writes++
}

// makeRoom 容量已滿時淘汰最少使用的項目
func (m *Manager) makeRoom() {
	if m.maxSize <= 0 || len(m.store) < m.maxSize {
		return
	}
	var oldestKey string
	var oldestAccess time.Time
	lowestAccessCount := 0

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Len 目前項目數
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ratio := 0.0
	if total := m.stats.hits + m.stats.misses; total > 0 {
		ratio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.maxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"writes":    m.stats.writes,
		"evictions": m.stats.evictions,
		"hit_ratio": ratio,
	}
}

// Close 關閉緩存管理器
func (m *Manager) Close() error {
	items := m.Len()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int("項目數", items),
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
