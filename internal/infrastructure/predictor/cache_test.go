package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/risk"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/database/redis"
)

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dest interface{}) error {
	b, ok := m.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(context.Context) (interface{}, error)) error {
	if m.Get(ctx, key, dest) == nil {
		return nil
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, v, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memCache) Ping(context.Context) error { return nil }

type stubPredictor struct {
	calls int
	p     risk.Prediction
	err   error
}

func (s *stubPredictor) Predict(context.Context, material.InputSpec) (risk.Prediction, error) {
	s.calls++
	return s.p, s.err
}

type hitCounter struct{ hits, misses int }

func (h *hitCounter) RecordCacheAccess(_ string, hit bool) {
	if hit {
		h.hits++
	} else {
		h.misses++
	}
}

func TestCachedPredictor_ServesRepeatsFromCache(t *testing.T) {
	want := risk.Prediction{RiskScore: 44, RiskClass: risk.Medium, ResistanceIndex: 65, Interpretation: "x"}
	next := &stubPredictor{p: want}
	obs := &hitCounter{}
	cp := NewCachedPredictor(next, newMemCache(), time.Minute, obs)

	for i := 0; i < 3; i++ {
		got, err := cp.Predict(context.Background(), material.DefaultInput())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 2, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

func TestCachedPredictor_FailuresAreNotCached(t *testing.T) {
	next := &stubPredictor{err: errors.New("down")}
	cp := NewCachedPredictor(next, newMemCache(), time.Minute, nil)

	_, err := cp.Predict(context.Background(), material.DefaultInput())
	assert.Error(t, err)
	_, err = cp.Predict(context.Background(), material.DefaultInput())
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCacheKey(t *testing.T) {
	in := material.DefaultInput()
	assert.Equal(t, "predict:polymer:500:30:0.85", CacheKey(in))

	unknownEnv := in
	unknownEnv.Environment = "windy"
	assert.Equal(t, CacheKey(in), CacheKey(unknownEnv))

	enclosed := in
	enclosed.Environment = material.Enclosed
	assert.NotEqual(t, CacheKey(in), CacheKey(enclosed))
}

//Personal.AI order the ending
