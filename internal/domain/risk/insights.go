package risk

import "github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"

// Disclaimer accompanies every rendered assessment.
const Disclaimer = "This score reflects relative fire failure risk under similar test conditions and is intended for comparison, not certification."

// Limitation is a titled caveat.
type Limitation struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Insights is the static background shown next to a result.
type Insights struct {
	MaterialType material.MaterialType `json:"materialType"`
	Properties   []string              `json:"properties"`
	Assumptions  []string              `json:"assumptions"`
	Limitations  []Limitation          `json:"limitations"`
}

var materialProperties = map[material.MaterialType][]string{
	material.Polymer: {
		"Organic molecular structure with carbon-based chains",
		"Typical decomposition onset: 200-400°C",
		"Variable thermal conductivity: 0.1-0.5 W/mK",
		"Susceptible to thermal degradation and oxidation",
		"May release combustible volatiles at high temperatures",
	},
	material.Composite: {
		"Multi-phase material with matrix and reinforcement",
		"Performance depends on constituent materials",
		"Interface degradation critical above 300°C",
		"Anisotropic thermal properties",
		"Delamination risk under thermal stress",
	},
	material.Generic: {
		"Baseline material properties assumed",
		"Moderate thermal stability",
		"Standard thermal expansion coefficients",
		"General combustibility characteristics",
		"Representative of common structural materials",
	},
}

var modelAssumptions = []string{
	"Uniform temperature distribution across material surface",
	"Standard atmospheric pressure and oxygen availability",
	"Material thickness and geometry effects normalized",
	"Steady-state thermal exposure conditions",
	"No external load or mechanical stress applied",
}

var limitations = []Limitation{
	{"Estimates only", "Results are model-based predictions and not certified test data. Real-world performance may vary significantly."},
	{"Not for certification", "This tool is intended for preliminary assessment and educational purposes only, not regulatory compliance."},
	{"Material variability", "Manufacturing processes, additives, and composition differences affect actual fire resistance."},
	{"Validation required", "Critical applications require laboratory testing per relevant fire safety standards (e.g., ASTM E84, ISO 5660)."},
}

// InsightsFor returns the background for t. Unknown classes get no property
// bullets. Returned slices are fresh copies.
func InsightsFor(t material.MaterialType) Insights {
	return Insights{
		MaterialType: t,
		Properties:   append([]string{}, materialProperties[t]...),
		Assumptions:  append([]string(nil), modelAssumptions...),
		Limitations:  append([]Limitation(nil), limitations...),
	}
}

//Personal.AI order the ending
