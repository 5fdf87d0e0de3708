package corpus

import (
	"fmt"
	"math"
)

// Range is the closed interval [Min, Max] observed on one feature.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Valid reports Min <= Max with both values finite.
func (r Range) Valid() bool {
	return isFinite(r.Min) && isFinite(r.Max) && r.Min <= r.Max
}

// Degenerate reports an axis with no spread.
func (r Range) Degenerate() bool { return r.Min == r.Max }

// Bounds maps each feature to its Range. The zero value has no ranges and
// normalizes every value to 0.
type Bounds struct {
	ranges map[Feature]Range
}

// NewBounds validates and copies ranges. Every entry must satisfy Min <= Max.
func NewBounds(ranges map[Feature]Range) (Bounds, error) {
	out := make(map[Feature]Range, len(ranges))
	for f, r := range ranges {
		if !r.Valid() {
			return Bounds{}, fmt.Errorf("corpus: invalid range for %q: min=%v max=%v", f, r.Min, r.Max)
		}
		out[f] = r
	}
	return Bounds{ranges: out}, nil
}

// Range returns the range for f.
func (b Bounds) Range(f Feature) (Range, bool) {
	r, ok := b.ranges[f]
	return r, ok
}

// Map returns a copy of the ranges.
func (b Bounds) Map() map[Feature]Range {
	out := make(map[Feature]Range, len(b.ranges))
	for f, r := range b.ranges {
		out[f] = r
	}
	return out
}

// ComputeBounds derives min and max for every feature over records. Features
// of an empty record set are absent.
func ComputeBounds(records []ReferenceRecord) Bounds {
	if len(records) == 0 {
		return Bounds{ranges: map[Feature]Range{}}
	}
	ranges := make(map[Feature]Range, len(Features))
	for _, f := range Features {
		r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, rec := range records {
			v := rec.Value(f)
			r.Min = math.Min(r.Min, v)
			r.Max = math.Max(r.Max, v)
		}
		ranges[f] = r
	}
	return Bounds{ranges: ranges}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

//Personal.AI order the ending
