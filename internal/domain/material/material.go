// Package material models the four user-supplied exposure parameters and the
// coarse material classes the risk engine distinguishes.
package material

import (
	"strings"
)

// MaterialType is the coarse material class of a specimen.
type MaterialType string

const (
	Polymer   MaterialType = "polymer"
	Composite MaterialType = "composite"
	Generic   MaterialType = "generic"
)

// IsKnown reports whether t is one of the recognised classes. Unknown values
// are carried through unchanged and scored with neutral multipliers.
func (t MaterialType) IsKnown() bool {
	switch t {
	case Polymer, Composite, Generic:
		return true
	default:
		return false
	}
}

func (t MaterialType) String() string { return string(t) }

// ParseMaterialType normalises case and surrounding space. It never fails.
func ParseMaterialType(s string) MaterialType {
	return MaterialType(strings.ToLower(strings.TrimSpace(s)))
}

// Environment is the ambient enclosure of the exposure.
type Environment string

const (
	OpenAir  Environment = "open-air"
	Enclosed Environment = "enclosed"
)

// Flow factor encodings shared with the reference corpus.
const (
	OpenAirFlowFactor  = 0.85
	EnclosedFlowFactor = 1.15
)

func (e Environment) IsKnown() bool {
	return e == OpenAir || e == Enclosed
}

func (e Environment) String() string { return string(e) }

// FlowFactor maps the environment onto the corpus's numeric flow axis.
// Anything other than enclosed is encoded as open air.
func (e Environment) FlowFactor() float64 {
	if e == Enclosed {
		return EnclosedFlowFactor
	}
	return OpenAirFlowFactor
}

// ParseEnvironment normalises case, space and the "open air"/"open_air"
// spellings. It never fails.
func ParseEnvironment(s string) Environment {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "-", "_", "-").Replace(v)
	return Environment(v)
}

// Input domains. Values outside them are accepted; the score model clamps.
const (
	MinTemperature  = 0.0
	MaxTemperature  = 2000.0
	MinExposureTime = 1.0
	MaxExposureTime = 480.0
)

// InputSpec is one assessment request. Temperature is in degrees and
// ExposureTime in minutes.
type InputSpec struct {
	MaterialType MaterialType `json:"materialType" yaml:"materialType"`
	Temperature  float64      `json:"temperature" yaml:"temperature"`
	ExposureTime float64      `json:"exposureTime" yaml:"exposureTime"`
	Environment  Environment  `json:"environment" yaml:"environment"`
}

// DefaultInput returns the values a fresh form starts with.
func DefaultInput() InputSpec {
	return InputSpec{
		MaterialType: Polymer,
		Temperature:  500,
		ExposureTime: 30,
		Environment:  OpenAir,
	}
}

// InDomain reports whether both numeric fields lie inside their nominal
// domains. Out-of-domain input is still scored.
func (in InputSpec) InDomain() bool {
	return in.Temperature >= MinTemperature && in.Temperature <= MaxTemperature &&
		in.ExposureTime >= MinExposureTime && in.ExposureTime <= MaxExposureTime
}

//Personal.AI order the ending
