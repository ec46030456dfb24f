package mass

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"nutriai/internal/core/ai/cache"
	"nutriai/internal/core/unit"
	"nutriai/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
)

type spyEstimator struct {
	calls atomic.Int32
	grams float64
	err   error
}

func (s *spyEstimator) EstimateUnitWeight(ctx context.Context, name string, u unit.Canonical) (float64, error) {
	s.calls.Add(1)
	return s.grams, s.err
}

func newStore() cache.Store {
	return cache.NewManager(&config.CacheConfig{})
}

func TestToGramsCuratedEgg(t *testing.T) {
	c := NewConverter(newStore(), nil)
	conv := c.ToGrams(context.Background(), "ovo", "unidade", "2")
	assert.Equal(t, 100.0, conv.Grams)
	assert.Equal(t, TierCurated, conv.Tier)

	// 複數名稱退回單數查表
	conv = c.ToGrams(context.Background(), "Ovos", "unidades", "3")
	assert.Equal(t, 150.0, conv.Grams)
}

func TestToGramsDirectAndGeneric(t *testing.T) {
	c := NewConverter(nil, nil)
	ctx := context.Background()

	assert.Equal(t, 500.0, c.ToGrams(ctx, "farinha", "g", "500").Grams)
	assert.Equal(t, 1500.0, c.ToGrams(ctx, "farinha", "kg", "1,5").Grams)
	assert.Equal(t, 250.0, c.ToGrams(ctx, "leite", "ml", "250").Grams)
	assert.Equal(t, 2000.0, c.ToGrams(ctx, "leite", "litros", "2").Grams)

	conv := c.ToGrams(ctx, "molho ingles", "colher de sopa", "2")
	assert.Equal(t, 30.0, conv.Grams)
	assert.Equal(t, TierGeneric, conv.Tier)

	conv = c.ToGrams(ctx, "melancia", "", "1")
	assert.Equal(t, 100.0, conv.Grams)
}

func TestToGramsMalformedQuantity(t *testing.T) {
	c := NewConverter(nil, nil)
	for _, q := range []string{"", "a gosto", "q.b.", "1/0", "abc"} {
		conv := c.ToGrams(context.Background(), "sal", "colher de chá", q)
		assert.Zero(t, conv.Grams, q)
		assert.Equal(t, TierNone, conv.Tier, q)
	}
}

func TestToGramsLinearInQuantity(t *testing.T) {
	spy := &spyEstimator{grams: 7}
	c := NewConverter(newStore(), spy)
	ctx := context.Background()

	cases := []struct{ name, unit string }{
		{"ovo", "unidade"},
		{"farinha de trigo", "xícara"},
		{"leite", "ml"},
		{"alho", "dentes"},
		{"cravo", "gota"},
		{"erva doce", "ramo"},
	}
	for _, tc := range cases {
		one := c.ToGrams(ctx, tc.name, tc.unit, "1").Grams
		half := c.ToGrams(ctx, tc.name, tc.unit, "1/2").Grams
		three := c.ToGrams(ctx, tc.name, tc.unit, "3").Grams
		assert.InDelta(t, one/2, half, 1e-9, tc.name)
		assert.InDelta(t, one*3, three, 1e-9, tc.name)
	}
}

func TestLearnedWeightDerivedOnce(t *testing.T) {
	spy := &spyEstimator{grams: 35}
	store := newStore()
	c := NewConverter(store, spy)
	ctx := context.Background()

	// tira 不在通用表中，會進入學習層
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, _ := c.GramsPerUnit(ctx, "ervas finas", unit.Strip)
			assert.Equal(t, 35.0, g)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), spy.calls.Load())

	g, tier := c.GramsPerUnit(ctx, "ervas finas", unit.Strip)
	assert.Equal(t, 35.0, g)
	assert.Equal(t, TierLearned, tier)
	assert.Equal(t, int32(1), spy.calls.Load())

	// 換一個新的轉換器共用快取，也不再呼叫估算
	other := NewConverter(store, spy)
	g, tier = other.GramsPerUnit(ctx, "Ervas Finas", unit.Strip)
	assert.Equal(t, 35.0, g)
	assert.Equal(t, TierLearned, tier)
	assert.Equal(t, int32(1), spy.calls.Load())
}

func TestLearnedWeightIgnoreIsCached(t *testing.T) {
	spy := &spyEstimator{grams: 0}
	c := NewConverter(newStore(), spy)
	ctx := context.Background()

	g, tier := c.GramsPerUnit(ctx, "papel manteiga", unit.Strip)
	assert.Equal(t, fallbackWeights[unit.Strip], g)
	assert.Equal(t, TierFallback, tier)

	_, _ = c.GramsPerUnit(ctx, "papel manteiga", unit.Strip)
	assert.Equal(t, int32(1), spy.calls.Load())
}

func TestLearnedWeightFallbackWhenUnavailable(t *testing.T) {
	spy := &spyEstimator{err: errors.New("estimation unavailable")}
	c := NewConverter(newStore(), spy)
	ctx := context.Background()

	g, tier := c.GramsPerUnit(ctx, "tempero baiano", unit.Serving)
	assert.Equal(t, fallbackWeights[unit.Serving], g)
	assert.Equal(t, TierFallback, tier)

	// 失敗不寫入快取，下次仍會嘗試
	_, _ = c.GramsPerUnit(ctx, "tempero baiano", unit.Serving)
	assert.Equal(t, int32(2), spy.calls.Load())
}

func TestFallbackCoversEveryCountUnit(t *testing.T) {
	for _, u := range unit.All() {
		if _, direct := directFactor(u); direct || u == unit.NoUnit {
			continue
		}
		assert.Greater(t, fallbackWeight(u), 0.0, string(u))
	}
}
