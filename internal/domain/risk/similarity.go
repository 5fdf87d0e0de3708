package risk

import (
	"math"
	"sort"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// DefaultTopK is the number of comparable materials reported.
const DefaultTopK = 5

// MaxDistance is the diagonal of the unit cube, the largest possible
// distance between two normalized vectors.
var MaxDistance = math.Sqrt(3)

// Similarity bands shared by comparable materials and confidence.
const (
	HighSimilarity   = 0.75
	MediumSimilarity = 0.50
)

// Relative-risk band half-width in score points.
const RelativeRiskBand = 5

type SimilarityLevel string

const (
	SimilarityHigh   SimilarityLevel = "High"
	SimilarityMedium SimilarityLevel = "Medium"
	SimilarityLow    SimilarityLevel = "Low"
)

type RelativeRisk string

const (
	RiskLower   RelativeRisk = "Lower"
	RiskSimilar RelativeRisk = "Similar"
	RiskHigher  RelativeRisk = "Higher"
)

// Match is one ranked corpus record.
type Match struct {
	Record     corpus.ReferenceRecord `json:"record"`
	Distance   float64                `json:"distance"`
	Similarity float64                `json:"similarity"`
}

// ComparableMaterial is the presentation view of a Match.
type ComparableMaterial struct {
	Name            string          `json:"name"`
	SimilarityLevel SimilarityLevel `json:"similarityLevel"`
	RelativeRisk    RelativeRisk    `json:"relativeRisk"`
}

// Matcher ranks corpus records by distance to an input. Record vectors are
// computed once at construction; a Matcher is safe for concurrent use.
type Matcher struct {
	records    []corpus.ReferenceRecord
	vectors    []Vector
	normalizer Normalizer
	k          int
}

// NewMatcher indexes c. A nil or empty corpus gives a Matcher that always
// returns no matches. k < 1 selects DefaultTopK.
func NewMatcher(c *corpus.Corpus, k int) *Matcher {
	if k < 1 {
		k = DefaultTopK
	}
	m := &Matcher{
		records:    c.Records(),
		normalizer: NewNormalizer(c.Bounds()),
		k:          k,
	}
	m.vectors = make([]Vector, len(m.records))
	for i, r := range m.records {
		m.vectors[i] = m.normalizer.RecordVector(r)
	}
	return m
}

// K returns the number of matches TopK selects.
func (m *Matcher) K() int { return m.k }

// Len returns the number of indexed records.
func (m *Matcher) Len() int { return len(m.records) }

// Normalizer returns the normalizer shared by records and input.
func (m *Matcher) Normalizer() Normalizer { return m.normalizer }

// Rank returns every record ordered by ascending distance. Equal distances
// keep corpus order.
func (m *Matcher) Rank(in material.InputSpec) []Match {
	if len(m.records) == 0 {
		return []Match{}
	}
	q := m.normalizer.InputVector(in)
	out := make([]Match, len(m.records))
	for i, r := range m.records {
		d := Distance(q, m.vectors[i])
		out[i] = Match{Record: r, Distance: d, Similarity: SimilarityFromDistance(d)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// TopK returns the first K ranked matches, fewer when the corpus is small.
func (m *Matcher) TopK(in material.InputSpec) []Match {
	ranked := m.Rank(in)
	if len(ranked) > m.k {
		ranked = ranked[:m.k]
	}
	return ranked
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Vector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// SimilarityFromDistance maps a distance to max(0, 1 - d/sqrt(3)).
func SimilarityFromDistance(d float64) float64 {
	return math.Max(0, 1-d/MaxDistance)
}

// LevelFor buckets a similarity value.
func LevelFor(similarity float64) SimilarityLevel {
	switch {
	case similarity >= HighSimilarity:
		return SimilarityHigh
	case similarity >= MediumSimilarity:
		return SimilarityMedium
	default:
		return SimilarityLow
	}
}

// CompareRisk places a reference score relative to the assessed score.
// Differences of up to RelativeRiskBand points either way are Similar.
func CompareRisk(reference float64, score int) RelativeRisk {
	s := float64(score)
	switch {
	case reference < s-RelativeRiskBand:
		return RiskLower
	case reference > s+RelativeRiskBand:
		return RiskHigher
	default:
		return RiskSimilar
	}
}

// Comparables converts matches into the presentation view for score.
func Comparables(matches []Match, score int) []ComparableMaterial {
	out := make([]ComparableMaterial, 0, len(matches))
	for _, m := range matches {
		out = append(out, ComparableMaterial{
			Name:            m.Record.DisplayName(),
			SimilarityLevel: LevelFor(m.Similarity),
			RelativeRisk:    CompareRisk(m.Record.RiskScore, score),
		})
	}
	return out
}

//Personal.AI order the ending
