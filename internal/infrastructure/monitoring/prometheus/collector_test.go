package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// metricValue returns the value of the first sample of family name whose
// labels include every pair in labels.
func metricValue(t *testing.T, c MetricsCollector, name string, labels map[string]string) (float64, bool) {
	t.Helper()
	families, err := c.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	sample:
		for _, m := range mf.GetMetric() {
			got := map[string]string{}
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue sample
				}
			}
			switch {
			case m.Counter != nil:
				return m.GetCounter().GetValue(), true
			case m.Gauge != nil:
				return m.GetGauge().GetValue(), true
			case m.Histogram != nil:
				return float64(m.GetHistogram().GetSampleCount()), true
			}
		}
	}
	return 0, false
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{Subsystem: "unit"}, nil)
	assert.Error(t, err)
}

func TestNewMetricsCollector_WithProcessMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", EnableProcessMetrics: true}, nil)
	require.NoError(t, err)
	assert.Contains(t, scrapeMetrics(t, c), "test_process_")
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterCounter("events_total", "events", "kind")
	vec.WithLabelValues("a").Inc()
	vec.WithLabelValues("a").Add(2)

	v, ok := metricValue(t, c, "test_unit_events_total", map[string]string{"kind": "a"})
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestRegisterCounter_DuplicateReturnsSameVector(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("dup_total", "dup").WithLabelValues().Inc()
	c.RegisterCounter("dup_total", "dup").WithLabelValues().Inc()

	v, _ := metricValue(t, c, "test_unit_dup_total", nil)
	assert.Equal(t, 2.0, v)
}

func TestRegister_TypeMismatchFallsBackToNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("mixed", "counter first")
	g := c.RegisterGauge("mixed", "then gauge")
	assert.IsType(t, noopGaugeVec{}, g)
	assert.NotPanics(t, func() { g.WithLabelValues().Set(1) })
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterGauge("level", "level").WithLabelValues().Set(7)
	h := c.RegisterHistogram("latency_seconds", "latency", nil, "op")
	h.WithLabelValues("x").Observe(0.2)
	h.WithLabelValues("x").Observe(0.4)

	v, _ := metricValue(t, c, "test_unit_level", nil)
	assert.Equal(t, 7.0, v)
	n, _ := metricValue(t, c, "test_unit_latency_seconds", map[string]string{"op": "x"})
	assert.Equal(t, 2.0, n)
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("timer_seconds", "timer", nil)
	timer := NewTimer(h.WithLabelValues())
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.ObserveDuration(), time.Duration(0))

	n, _ := metricValue(t, c, "test_unit_timer_seconds", nil)
	assert.Equal(t, 1.0, n)

	assert.NotPanics(t, func() { NewTimer(nil).ObserveDuration() })
}

//Personal.AI order the ending
