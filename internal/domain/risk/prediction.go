package risk

import "fmt"

// Prediction is a score produced outside the local formula. It replaces the
// numeric fields and interpretation of a result; everything else is still
// derived locally.
type Prediction struct {
	RiskScore       int       `json:"riskScore"`
	RiskClass       RiskClass `json:"riskClass"`
	ResistanceIndex int       `json:"resistanceIndex"`
	Interpretation  string    `json:"interpretation"`
}

// Validate rejects predictions the rest of the pipeline cannot render.
func (p Prediction) Validate() error {
	if p.RiskScore < minScore || p.RiskScore > maxScore {
		return fmt.Errorf("risk score %d outside [0,100]", p.RiskScore)
	}
	if !p.RiskClass.IsValid() {
		return fmt.Errorf("unknown risk class %q", p.RiskClass)
	}
	return nil
}

// LocalPrediction wraps the local formula in the same shape.
func LocalPrediction(s Score) Prediction {
	return Prediction{
		RiskScore:       s.RiskScore,
		RiskClass:       s.RiskClass,
		ResistanceIndex: s.ResistanceIndex,
		Interpretation:  Interpretation(s.RiskClass),
	}
}

//Personal.AI order the ending
