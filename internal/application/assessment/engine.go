// Package assessment runs a complete risk assessment: score, comparable
// materials, confidence and narrative, from either the local formula or the
// remote predictor.
package assessment

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/risk"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

// Result is the assessment shape handed to presentation layers.
type Result struct {
	RiskScore           int                       `json:"riskScore"`
	RiskClass           risk.RiskClass            `json:"riskClass"`
	ResistanceIndex     int                       `json:"resistanceIndex"`
	Comparison          string                    `json:"comparison"`
	Interpretation      string                    `json:"interpretation"`
	ConfidenceLevel     risk.ConfidenceLevel      `json:"confidenceLevel"`
	ComparableMaterials []risk.ComparableMaterial `json:"comparableMaterials"`
}

// Assessment is a Result plus the intermediate values that produced it.
type Assessment struct {
	Result     Result
	Source     Source
	Input      material.InputSpec
	Confidence risk.Confidence
	Matches    []risk.Match
	// Breakdown is set only for locally scored assessments.
	Breakdown *risk.Breakdown
}

// snapshot pairs a corpus with its matcher so both are swapped together.
type snapshot struct {
	corpus  *corpus.Corpus
	matcher *risk.Matcher
}

// Engine is safe for concurrent use. The corpus can be replaced at any time;
// an in-flight assessment keeps the snapshot it started with.
type Engine struct {
	state         atomic.Pointer[snapshot]
	predictor     Predictor
	defaultSource Source
	topK          int
	logger        logging.Logger
	metrics       Metrics
}

type Option func(*Engine)

// WithPredictor enables the remote source.
func WithPredictor(p Predictor) Option {
	return func(e *Engine) { e.predictor = p }
}

func WithDefaultSource(s Source) Option {
	return func(e *Engine) {
		if s != "" {
			e.defaultSource = s
		}
	}
}

func WithTopK(k int) Option {
	return func(e *Engine) { e.topK = k }
}

func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// NewEngine builds an engine over c. A nil corpus behaves as empty.
func NewEngine(c *corpus.Corpus, opts ...Option) *Engine {
	e := &Engine{
		defaultSource: SourceLocal,
		topK:          risk.DefaultTopK,
		logger:        logging.NewNopLogger(),
		metrics:       noopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SwapCorpus(c)
	return e
}

// SwapCorpus atomically replaces the reference corpus.
func (e *Engine) SwapCorpus(c *corpus.Corpus) {
	if c == nil {
		c = corpus.Empty()
	}
	e.state.Store(&snapshot{corpus: c, matcher: risk.NewMatcher(c, e.topK)})
}

func (e *Engine) Corpus() *corpus.Corpus { return e.state.Load().corpus }

// Ready reports whether comparable materials can be produced.
func (e *Engine) Ready() bool { return !e.Corpus().IsEmpty() }

func (e *Engine) DefaultSource() Source { return e.defaultSource }

// RemoteEnabled reports whether a predictor is configured.
func (e *Engine) RemoteEnabled() bool { return e.predictor != nil }

// Rank orders the whole corpus by distance to in.
func (e *Engine) Rank(in material.InputSpec) []risk.Match {
	return e.state.Load().matcher.Rank(in)
}

// Assess scores in using src (empty selects the default source) and
// attaches comparable materials, confidence and narrative. A remote failure
// yields no Assessment; the local formula is never substituted.
func (e *Engine) Assess(ctx context.Context, in material.InputSpec, src Source) (*Assessment, error) {
	start := time.Now()
	snap := e.state.Load()
	if src == "" {
		src = e.defaultSource
	}

	pred, breakdown, err := e.score(ctx, in, src)
	if err != nil {
		code := errors.GetCode(err)
		e.metrics.RecordAssessmentFailure(src.String(), string(code))
		e.logger.Warn("assessment failed",
			logging.String("source", src.String()),
			logging.String("code", string(code)),
			logging.Err(err))
		return nil, err
	}

	matches := snap.matcher.TopK(in)
	confidence := risk.EstimateConfidence(matches, in.MaterialType)
	narrative := risk.Compose(pred.RiskClass, in.MaterialType)

	interpretation := pred.Interpretation
	if interpretation == "" {
		interpretation = narrative.Interpretation
	}

	a := &Assessment{
		Result: Result{
			RiskScore:           pred.RiskScore,
			RiskClass:           pred.RiskClass,
			ResistanceIndex:     pred.ResistanceIndex,
			Comparison:          narrative.Comparison,
			Interpretation:      interpretation,
			ConfidenceLevel:     confidence.Level,
			ComparableMaterials: risk.Comparables(matches, pred.RiskScore),
		},
		Source:     src,
		Input:      in,
		Confidence: confidence,
		Matches:    matches,
		Breakdown:  breakdown,
	}

	d := time.Since(start)
	e.metrics.RecordAssessment(src.String(), string(pred.RiskClass), len(matches), d)
	e.logger.Debug("assessment complete",
		logging.String("source", src.String()),
		logging.Int("risk_score", pred.RiskScore),
		logging.String("risk_class", string(pred.RiskClass)),
		logging.Int("comparables", len(matches)),
		logging.Duration("duration", d))
	return a, nil
}

func (e *Engine) score(ctx context.Context, in material.InputSpec, src Source) (risk.Prediction, *risk.Breakdown, error) {
	switch src {
	case SourceLocal:
		s := risk.Compute(in)
		b := s.Breakdown
		return risk.LocalPrediction(s), &b, nil
	case SourceRemote:
		if e.predictor == nil {
			return risk.Prediction{}, nil, errors.New(errors.ErrCodeUnknownScoreSource, "remote score source is not configured")
		}
		p, err := e.predictor.Predict(ctx, in)
		if err != nil {
			return risk.Prediction{}, nil, err
		}
		return p, nil, nil
	default:
		return risk.Prediction{}, nil, errors.New(errors.ErrCodeUnknownScoreSource, "unknown score source").WithDetail(string(src))
	}
}

//Personal.AI order the ending
