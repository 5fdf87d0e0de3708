package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics is the engine's metric set.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec

	AssessmentsTotal         CounterVec
	AssessmentFailuresTotal  CounterVec
	AssessmentDuration       HistogramVec
	ComparableMaterialsFound HistogramVec

	PredictorRequestsTotal   CounterVec
	PredictorRequestDuration HistogramVec

	CorpusRecords   GaugeVec
	CorpusLoadTotal CounterVec

	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	HealthCheckStatus GaugeVec
}

var (
	DefaultHTTPDurationBuckets      = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultPredictorDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	comparableCountBuckets          = []float64{0, 1, 2, 3, 4, 5, 10}
)

// NewAppMetrics registers every metric on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")

	m.AssessmentsTotal = collector.RegisterCounter("assessments_total", "Completed risk assessments", "source", "risk_class")
	m.AssessmentFailuresTotal = collector.RegisterCounter("assessment_failures_total", "Failed risk assessments", "source", "code")
	m.AssessmentDuration = collector.RegisterHistogram("assessment_duration_seconds", "Risk assessment duration", DefaultPredictorDurationBuckets, "source")
	m.ComparableMaterialsFound = collector.RegisterHistogram("comparable_materials_found", "Comparable materials returned per assessment", comparableCountBuckets)

	m.PredictorRequestsTotal = collector.RegisterCounter("predictor_requests_total", "Remote predictor calls", "outcome")
	m.PredictorRequestDuration = collector.RegisterHistogram("predictor_request_duration_seconds", "Remote predictor call duration", DefaultPredictorDurationBuckets)

	m.CorpusRecords = collector.RegisterGauge("corpus_records", "Records in the active reference corpus")
	m.CorpusLoadTotal = collector.RegisterCounter("corpus_loads_total", "Reference corpus load attempts", "status")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	return m
}

func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *AppMetrics) RecordAssessment(source, riskClass string, comparables int, d time.Duration) {
	m.AssessmentsTotal.WithLabelValues(source, riskClass).Inc()
	m.AssessmentDuration.WithLabelValues(source).Observe(d.Seconds())
	m.ComparableMaterialsFound.WithLabelValues().Observe(float64(comparables))
}

func (m *AppMetrics) RecordAssessmentFailure(source, code string) {
	m.AssessmentFailuresTotal.WithLabelValues(source, code).Inc()
}

func (m *AppMetrics) RecordPredictorCall(outcome string, d time.Duration) {
	m.PredictorRequestsTotal.WithLabelValues(outcome).Inc()
	m.PredictorRequestDuration.WithLabelValues().Observe(d.Seconds())
}

// RecordCorpusLoad tracks a load attempt. records is ignored on failure.
func (m *AppMetrics) RecordCorpusLoad(records int, err error) {
	if err != nil {
		m.CorpusLoadTotal.WithLabelValues("failure").Inc()
		return
	}
	m.CorpusLoadTotal.WithLabelValues("success").Inc()
	m.CorpusRecords.WithLabelValues().Set(float64(records))
}

func (m *AppMetrics) RecordCacheAccess(cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

func (m *AppMetrics) SetHealth(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

//Personal.AI order the ending
