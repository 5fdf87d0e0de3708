package assessment

import (
	"context"
	"strings"
	"time"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/risk"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

// Source selects where the risk score of an assessment comes from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

func (s Source) String() string { return string(s) }

// ParseSource accepts local, remote or empty. Empty means the engine default.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case "", SourceLocal, SourceRemote:
		return src, nil
	default:
		return "", errors.New(errors.ErrCodeUnknownScoreSource, "unknown score source").WithDetail(s)
	}
}

// Predictor produces a remote score.
type Predictor interface {
	Predict(ctx context.Context, in material.InputSpec) (risk.Prediction, error)
}

// Metrics receives engine events. *prometheus.AppMetrics satisfies it.
type Metrics interface {
	RecordAssessment(source, riskClass string, comparables int, d time.Duration)
	RecordAssessmentFailure(source, code string)
	RecordCorpusLoad(records int, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordAssessment(string, string, int, time.Duration) {}
func (noopMetrics) RecordAssessmentFailure(string, string)              {}
func (noopMetrics) RecordCorpusLoad(int, error)                         {}

//Personal.AI order the ending
