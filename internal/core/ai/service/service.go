package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"nutriai/internal/core/ai/provider"
	"nutriai/internal/pkg/common"

	"go.uber.org/zap"
)

// Response AI 回應
type Response struct {
	Content string
}

// Service 外部估算服務的唯一入口：控制呼叫間隔並在配額耗盡時關閉閘門
type Service struct {
	provider    provider.Provider
	gate        *Gate
	minInterval time.Duration
	// slot 同一時間只允許一個對外呼叫
	slot chan struct{}

	mu          sync.Mutex
	lastRequest time.Time
}

// NewService 創建 AI 服務；provider 為 nil 時閘門一開始即關閉
func NewService(p provider.Provider, gate *Gate, minInterval time.Duration) *Service {
	if gate == nil {
		gate = NewGate()
	}
	if p == nil {
		gate.Close("no provider configured")
	}
	return &Service{
		provider:    p,
		gate:        gate,
		minInterval: minInterval,
		slot:        make(chan struct{}, 1),
	}
}

// Gate 回傳共用閘門
func (s *Service) Gate() *Gate {
	return s.gate
}

// Available 是否仍可呼叫外部估算
func (s *Service) Available() bool {
	return s.gate.Open()
}

// ProcessRequest 統一對外方法；任何失敗都以 common.ErrEstimationUnavailable 回報
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*Response, error) {
	if !s.gate.Open() {
		return nil, common.ErrEstimationUnavailable.Wrap(errors.New(s.gate.Reason()))
	}

	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, common.ErrEstimationUnavailable.Wrap(ctx.Err())
	}
	defer func() { <-s.slot }()

	// 等待期間閘門可能已被其他呼叫關閉
	if !s.gate.Open() {
		return nil, common.ErrEstimationUnavailable.Wrap(errors.New(s.gate.Reason()))
	}

	if err := s.pace(ctx); err != nil {
		return nil, common.ErrEstimationUnavailable.Wrap(err)
	}

	prompt = strings.Join(strings.Fields(prompt), " ")

	start := time.Now()
	resp, err := s.provider.Generate(ctx, provider.UserPrompt(prompt))
	common.LogAICall(s.provider.GetModel(), time.Since(start), err)
	if err != nil {
		if errors.Is(err, common.ErrQuotaExceeded) {
			if s.gate.Close(err.Error()) {
				common.LogWarn("估算配額已耗盡，停止外部估算",
					zap.String("model", s.provider.GetModel()),
					zap.Error(err),
				)
			}
		}
		return nil, common.ErrEstimationUnavailable.Wrap(err)
	}

	return &Response{Content: resp.Content}, nil
}

// pace 確保兩次呼叫間至少間隔 minInterval
func (s *Service) pace(ctx context.Context) error {
	s.mu.Lock()
	wait := s.minInterval - time.Since(s.lastRequest)
	if wait < 0 {
		wait = 0
	}
	s.lastRequest = time.Now().Add(wait)
	s.mu.Unlock()

	if wait == 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 關閉底層提供者
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}
