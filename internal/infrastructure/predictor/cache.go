package predictor

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/risk"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/database/redis"
)

// Predictor is satisfied by Client and CachedPredictor.
type Predictor interface {
	Predict(ctx context.Context, in material.InputSpec) (risk.Prediction, error)
}

// CacheObserver is told whether each lookup was served from the cache.
type CacheObserver interface {
	RecordCacheAccess(cache string, hit bool)
}

const cacheName = "predictor"

// CachedPredictor memoises successful predictions keyed by the wire payload.
// Failures are never cached.
type CachedPredictor struct {
	next     Predictor
	cache    redis.Cache
	ttl      time.Duration
	observer CacheObserver
}

func NewCachedPredictor(next Predictor, cache redis.Cache, ttl time.Duration, observer CacheObserver) *CachedPredictor {
	return &CachedPredictor{next: next, cache: cache, ttl: ttl, observer: observer}
}

func (p *CachedPredictor) Predict(ctx context.Context, in material.InputSpec) (risk.Prediction, error) {
	loaded := false
	var out risk.Prediction
	err := p.cache.GetOrSet(ctx, CacheKey(in), &out, p.ttl, func(ctx context.Context) (interface{}, error) {
		loaded = true
		return p.next.Predict(ctx, in)
	})
	if p.observer != nil {
		p.observer.RecordCacheAccess(cacheName, !loaded)
	}
	if err != nil {
		return risk.Prediction{}, err
	}
	return out, nil
}

// CacheKey identifies a request by exactly what is sent upstream, so inputs
// that encode identically share an entry.
func CacheKey(in material.InputSpec) string {
	r := NewRequest(in)
	return strings.Join([]string{
		"predict",
		r.Material,
		strconv.FormatFloat(r.HeatFlux, 'g', -1, 64),
		strconv.FormatFloat(r.TimeToIgn, 'g', -1, 64),
		strconv.FormatFloat(r.FlowFactor, 'g', -1, 64),
	}, ":")
}

//Personal.AI order the ending
