// Package corpus holds the reference dataset the similarity matcher searches:
// historical specimen records plus per-feature normalization bounds. A Corpus
// is built once and then shared read-only.
package corpus

import (
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// Feature names one axis of the comparison space. The string values are the
// column names used by the corpus document and the remote predictor.
type Feature string

const (
	HeatFlux   Feature = "HEAT FLUX"
	TimeToIgn  Feature = "TIME TO IGN"
	FlowFactor Feature = "FLOW FACTOR"
)

// Features lists the comparison axes in vector order.
var Features = []Feature{HeatFlux, TimeToIgn, FlowFactor}

// PlaceholderName is shown for records without a material name.
const PlaceholderName = "Unnamed reference material"

// ReferenceRecord is one historical specimen. HeatFlux lives on the
// temperature axis, TimeToIgn on the exposure axis and FlowFactor on the
// environment axis.
type ReferenceRecord struct {
	MaterialName string                `json:"materialName" yaml:"materialName"`
	MaterialType material.MaterialType `json:"materialType" yaml:"materialType"`
	HeatFlux     float64               `json:"heatFlux" yaml:"heatFlux"`
	TimeToIgn    float64               `json:"timeToIgn" yaml:"timeToIgn"`
	FlowFactor   float64               `json:"flowFactor" yaml:"flowFactor"`
	RiskScore    float64               `json:"riskScore" yaml:"riskScore"`
}

// DisplayName returns MaterialName or PlaceholderName when it is empty.
func (r ReferenceRecord) DisplayName() string {
	if r.MaterialName == "" {
		return PlaceholderName
	}
	return r.MaterialName
}

// Value returns the raw value of r on axis f.
func (r ReferenceRecord) Value(f Feature) float64 {
	switch f {
	case HeatFlux:
		return r.HeatFlux
	case TimeToIgn:
		return r.TimeToIgn
	case FlowFactor:
		return r.FlowFactor
	default:
		return 0
	}
}

//Personal.AI order the ending
