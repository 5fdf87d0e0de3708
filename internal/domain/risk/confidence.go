package risk

import (
	"fmt"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// ConfidenceLevel is the qualitative trust in the comparable-material view.
type ConfidenceLevel string

const (
	ConfidenceHigh     ConfidenceLevel = "High"
	ConfidenceModerate ConfidenceLevel = "Moderate"
	ConfidenceCaution  ConfidenceLevel = "Caution"
)

// EmptyCorpusDetail explains a Caution level caused by having nothing to
// compare against.
const EmptyCorpusDetail = "No comparable materials were found in the reference dataset, so this estimate could not be cross-checked against historical data."

var similarityDetails = map[ConfidenceLevel]string{
	ConfidenceHigh:     "Comparable materials closely match the specified conditions (average similarity %.0f%%).",
	ConfidenceModerate: "Comparable materials partially match the specified conditions (average similarity %.0f%%).",
	ConfidenceCaution:  "Comparable materials differ substantially from the specified conditions (average similarity %.0f%%).",
}

// Confidence is the output of EstimateConfidence.
type Confidence struct {
	Level             ConfidenceLevel `json:"confidenceLevel"`
	AverageSimilarity float64         `json:"averageSimilarity"`
	SimilarityDetail  string          `json:"similarityDetail"`
}

// EstimateConfidence derives a level from the mean similarity of top. Polymer
// inputs are demoted one level because the polymer class varies more across
// the corpus. The detail sentence follows the undemoted band.
func EstimateConfidence(top []Match, t material.MaterialType) Confidence {
	if len(top) == 0 {
		return Confidence{Level: ConfidenceCaution, SimilarityDetail: EmptyCorpusDetail}
	}

	var sum float64
	for _, m := range top {
		sum += m.Similarity
	}
	avg := sum / float64(len(top))

	base := bandFor(avg)
	level := base
	if t == material.Polymer {
		level = demote(base)
	}
	return Confidence{
		Level:             level,
		AverageSimilarity: avg,
		SimilarityDetail:  fmt.Sprintf(similarityDetails[base], avg*100),
	}
}

func bandFor(avg float64) ConfidenceLevel {
	switch {
	case avg >= HighSimilarity:
		return ConfidenceHigh
	case avg >= MediumSimilarity:
		return ConfidenceModerate
	default:
		return ConfidenceCaution
	}
}

func demote(l ConfidenceLevel) ConfidenceLevel {
	if l == ConfidenceHigh {
		return ConfidenceModerate
	}
	return ConfidenceCaution
}

//Personal.AI order the ending
