package service

import (
	"sync"
	"sync/atomic"
)

// Gate 全域估算閘門；關閉後所有 worker 不再呼叫外部估算
type Gate struct {
	closed atomic.Bool
	once   sync.Once
	reason atomic.Value
}

// NewGate 建立開啟中的閘門
func NewGate() *Gate {
	return &Gate{}
}

// Open 是否仍可呼叫外部估算
func (g *Gate) Open() bool {
	return g != nil && !g.closed.Load()
}

// Close 關閉閘門，只記錄第一次的原因
func (g *Gate) Close(reason string) bool {
	closedNow := false
	g.once.Do(func() {
		g.reason.Store(reason)
		g.closed.Store(true)
		closedNow = true
	})
	return closedNow
}

// Reason 關閉原因
func (g *Gate) Reason() string {
	if r, ok := g.reason.Load().(string); ok {
		return r
	}
	return ""
}
