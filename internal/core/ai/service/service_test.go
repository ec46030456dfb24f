package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nutriai/internal/core/ai/provider"
	"nutriai/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls   int32
	content string
	err     error
}

func (f *fakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.content}, nil
}

func (f *fakeProvider) GetModel() string          { return "fake" }
func (f *fakeProvider) GetTimeout() time.Duration { return time.Second }
func (f *fakeProvider) Close() error              { return nil }

func TestProcessRequest(t *testing.T) {
	p := &fakeProvider{content: "ok"}
	svc := NewService(p, nil, 0)

	resp, err := svc.ProcessRequest(context.Background(), "  prompt \n with   spaces ")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.True(t, svc.Available())
}

func TestQuotaClosesGate(t *testing.T) {
	p := &fakeProvider{err: common.ErrQuotaExceeded.Wrap(errors.New("429"))}
	gate := NewGate()
	svc := NewService(p, gate, 0)

	_, err := svc.ProcessRequest(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrEstimationUnavailable)
	assert.ErrorIs(t, err, common.ErrQuotaExceeded)
	assert.False(t, gate.Open())

	_, err = svc.ProcessRequest(context.Background(), "y")
	assert.ErrorIs(t, err, common.ErrEstimationUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&p.calls))
}

func TestQuotaStopsConcurrentCallers(t *testing.T) {
	p := &fakeProvider{err: common.ErrQuotaExceeded.Wrap(errors.New("429"))}
	svc := NewService(p, nil, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ProcessRequest(context.Background(), "x")
			assert.ErrorIs(t, err, common.ErrEstimationUnavailable)
		}()
	}
	wg.Wait()

	assert.False(t, svc.Available())
	assert.Equal(t, int32(1), atomic.LoadInt32(&p.calls))
}

func TestOtherErrorsKeepGateOpen(t *testing.T) {
	p := &fakeProvider{err: errors.New("timeout")}
	svc := NewService(p, nil, 0)

	_, err := svc.ProcessRequest(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrEstimationUnavailable)
	assert.True(t, svc.Available())
}

func TestNilProviderStartsClosed(t *testing.T) {
	svc := NewService(nil, nil, 0)
	assert.False(t, svc.Available())
	_, err := svc.ProcessRequest(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrEstimationUnavailable)
}

func TestPaceHonoursContext(t *testing.T) {
	p := &fakeProvider{content: "ok"}
	svc := NewService(p, nil, time.Hour)

	_, err := svc.ProcessRequest(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = svc.ProcessRequest(ctx, "second")
	assert.ErrorIs(t, err, common.ErrEstimationUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGateClosesOnce(t *testing.T) {
	g := NewGate()
	assert.True(t, g.Open())
	assert.True(t, g.Close("first"))
	assert.False(t, g.Close("second"))
	assert.Equal(t, "first", g.Reason())
	assert.False(t, g.Open())
}
