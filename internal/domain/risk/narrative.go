package risk

import (
	"strings"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

const materialPlaceholder = "${materialName}"

var comparisonTemplates = map[RiskClass]string{
	Low:    "Performs significantly better than baseline ${materialName} under similar thermal conditions. Suitable for applications with moderate fire safety requirements.",
	Medium: "Performance is comparable to typical ${materialName} at these exposure levels. Additional fire protection measures may be advisable for critical applications.",
	High:   "Shows elevated risk compared to fire-resistant alternatives. Material degradation likely under these conditions. Consider fire-retardant treatments or alternative materials for safety-critical use.",
}

var interpretations = map[RiskClass]string{
	Low:    "This material demonstrates good fire resistance under the specified conditions. Expected to maintain structural integrity with minimal degradation during the exposure period.",
	Medium: "This material shows moderate fire resistance. Some thermal degradation expected, but catastrophic failure is unlikely within the exposure duration. Monitor for signs of weakening.",
	High:   "This material exhibits poor fire resistance at these conditions. Significant thermal degradation, potential ignition, or structural failure is likely. Not recommended for use without additional fire protection.",
}

var displayNames = map[material.MaterialType]string{
	material.Polymer:   "polymers",
	material.Composite: "composite materials",
	material.Generic:   "generic baseline materials",
}

// Narrative holds the two human-readable strings attached to a result.
type Narrative struct {
	Comparison     string `json:"comparison"`
	Interpretation string `json:"interpretation"`
}

// DisplayName returns the plural class name used in comparisons.
func DisplayName(t material.MaterialType) string {
	if n, ok := displayNames[t]; ok {
		return n
	}
	return "materials"
}

// Comparison returns the comparison sentence for class and t, empty for an
// unrecognised class.
func Comparison(class RiskClass, t material.MaterialType) string {
	return strings.ReplaceAll(comparisonTemplates[class], materialPlaceholder, DisplayName(t))
}

// Interpretation returns the interpretation sentence for class.
func Interpretation(class RiskClass) string {
	return interpretations[class]
}

// Compose looks up both narrative strings.
func Compose(class RiskClass, t material.MaterialType) Narrative {
	return Narrative{
		Comparison:     Comparison(class, t),
		Interpretation: Interpretation(class),
	}
}

//Personal.AI order the ending
