package risk

import (
	"math"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// Vector is a point in the normalized comparison space, ordered as
// corpus.Features.
type Vector [3]float64

// Normalizer maps raw feature values into [0,1] using corpus-wide bounds.
// Records and live input go through the same Normalizer so they share one
// coordinate space.
type Normalizer struct {
	bounds corpus.Bounds
}

func NewNormalizer(b corpus.Bounds) Normalizer {
	return Normalizer{bounds: b}
}

// Normalize returns (v-min)/(max-min). Input outside the corpus range is
// pinned to the nearest edge, so values below min map to 0 and values above
// max map to 1; NaN maps to 0. A degenerate or missing axis yields 0 and so
// contributes no distance.
func (n Normalizer) Normalize(v float64, f corpus.Feature) float64 {
	r, ok := n.bounds.Range(f)
	if !ok || r.Degenerate() {
		return 0
	}
	x := (v - r.Min) / (r.Max - r.Min)
	switch {
	case x < 0 || math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// RecordVector places a corpus record in the comparison space.
func (n Normalizer) RecordVector(r corpus.ReferenceRecord) Vector {
	return Vector{
		n.Normalize(r.HeatFlux, corpus.HeatFlux),
		n.Normalize(r.TimeToIgn, corpus.TimeToIgn),
		n.Normalize(r.FlowFactor, corpus.FlowFactor),
	}
}

// InputVector places an assessment request in the comparison space. The
// environment is first encoded as its flow factor.
func (n Normalizer) InputVector(in material.InputSpec) Vector {
	return Vector{
		n.Normalize(in.Temperature, corpus.HeatFlux),
		n.Normalize(in.ExposureTime, corpus.TimeToIgn),
		n.Normalize(in.Environment.FlowFactor(), corpus.FlowFactor),
	}
}

//Personal.AI order the ending
