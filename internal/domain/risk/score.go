// Package risk implements the deterministic fire-resistance scoring formula,
// the nearest-neighbour comparison against the reference corpus and the
// fixed narrative tables built on top of both.
package risk

import (
	"math"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// RiskClass buckets a risk score.
type RiskClass string

const (
	Low    RiskClass = "Low"
	Medium RiskClass = "Medium"
	High   RiskClass = "High"
)

func (c RiskClass) IsValid() bool {
	return c == Low || c == Medium || c == High
}

// Class boundaries. A score equal to a boundary belongs to the higher class.
const (
	MediumThreshold = 35
	HighThreshold   = 65
)

// Formula weights.
const (
	maxTempScore    = 40.0
	tempReference   = 1000.0
	maxTimeScore    = 30.0
	timeReference   = 60.0
	factorWeight    = 15.0
	resistanceSlope = 0.8

	minScore = 0
	maxScore = 100
)

var materialFactors = map[material.MaterialType]float64{
	material.Polymer:   1.2,
	material.Composite: 0.9,
	material.Generic:   1.0,
}

var environmentFactors = map[material.Environment]float64{
	material.OpenAir:  0.85,
	material.Enclosed: 1.15,
}

// MaterialFactor returns the multiplier for t, 1.0 when unrecognised.
func MaterialFactor(t material.MaterialType) float64 {
	if f, ok := materialFactors[t]; ok {
		return f
	}
	return 1.0
}

// EnvironmentFactor returns the multiplier for e, 1.0 when unrecognised.
func EnvironmentFactor(e material.Environment) float64 {
	if f, ok := environmentFactors[e]; ok {
		return f
	}
	return 1.0
}

// Breakdown exposes the four additive components of a score.
type Breakdown struct {
	TempScore        float64 `json:"tempScore"`
	TimeScore        float64 `json:"timeScore"`
	MaterialScore    float64 `json:"materialScore"`
	EnvironmentScore float64 `json:"environmentScore"`
}

// Total is the unrounded, unclamped sum.
func (b Breakdown) Total() float64 {
	return b.TempScore + b.TimeScore + b.MaterialScore + b.EnvironmentScore
}

// Score is the numeric output of the formula.
type Score struct {
	RiskScore       int       `json:"riskScore"`
	RiskClass       RiskClass `json:"riskClass"`
	ResistanceIndex int       `json:"resistanceIndex"`
	Breakdown       Breakdown `json:"breakdown"`
}

// ComputeBreakdown evaluates the four component scores for in.
func ComputeBreakdown(in material.InputSpec) Breakdown {
	return Breakdown{
		TempScore:        math.Min(in.Temperature/tempReference*maxTempScore, maxTempScore),
		TimeScore:        math.Min(in.ExposureTime/timeReference*maxTimeScore, maxTimeScore),
		MaterialScore:    MaterialFactor(in.MaterialType) * factorWeight,
		EnvironmentScore: EnvironmentFactor(in.Environment) * factorWeight,
	}
}

// Compute scores in. It never fails: NaN or extreme input still yields a
// score inside [0,100].
func Compute(in material.InputSpec) Score {
	b := ComputeBreakdown(in)
	score := ClampScore(b.Total())
	return Score{
		RiskScore:       score,
		RiskClass:       Classify(score),
		ResistanceIndex: ResistanceIndex(score),
		Breakdown:       b,
	}
}

// ClampScore rounds half away from zero and clamps to [0,100]. NaN maps to 0.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return minScore
	}
	r := math.Round(raw)
	if r < minScore {
		return minScore
	}
	if r > maxScore {
		return maxScore
	}
	return int(r)
}

// Classify buckets a score: below 35 Low, below 65 Medium, otherwise High.
func Classify(score int) RiskClass {
	switch {
	case score < MediumThreshold:
		return Low
	case score < HighThreshold:
		return Medium
	default:
		return High
	}
}

// ResistanceIndex is round(100 - 0.8*score).
func ResistanceIndex(score int) int {
	return int(math.Round(100 - float64(score)*resistanceSlope))
}

//Personal.AI order the ending
