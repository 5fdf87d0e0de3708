// Package assessment holds the JSON wire types of the risk engine HTTP API.
// They are shared by the server and the Go SDK.
package assessment

import (
	"fmt"
	"math"
	"strings"

	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

// Request is the body of POST /api/v1/assessments. Numeric fields are
// pointers so that an omitted value can be told apart from zero.
type Request struct {
	MaterialType string   `json:"materialType"`
	Temperature  *float64 `json:"temperature"`
	ExposureTime *float64 `json:"exposureTime"`
	Environment  string   `json:"environment"`
	Source       string   `json:"source,omitempty"`
}

// NewRequest builds a fully populated request.
func NewRequest(materialType string, temperature, exposureTime float64, environment string) Request {
	return Request{
		MaterialType: materialType,
		Temperature:  &temperature,
		ExposureTime: &exposureTime,
		Environment:  environment,
	}
}

// Validate requires all four inputs. Values outside the nominal domain are
// accepted; the score model bounds them.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.MaterialType) == "" {
		missing = append(missing, "materialType")
	}
	if r.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if r.ExposureTime == nil {
		missing = append(missing, "exposureTime")
	}
	if strings.TrimSpace(r.Environment) == "" {
		missing = append(missing, "environment")
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeValidation, "missing required fields").
			WithDetail(strings.Join(missing, ", "))
	}
	for name, v := range map[string]float64{"temperature": *r.Temperature, "exposureTime": *r.ExposureTime} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeValidation, "numeric field must be finite").WithDetail(name)
		}
	}
	return nil
}

type ComparableMaterial struct {
	Name            string `json:"name"`
	SimilarityLevel string `json:"similarityLevel"`
	RelativeRisk    string `json:"relativeRisk"`
}

// Result mirrors the engine's assessment result field for field.
type Result struct {
	RiskScore           int                  `json:"riskScore"`
	RiskClass           string               `json:"riskClass"`
	ResistanceIndex     int                  `json:"resistanceIndex"`
	Comparison          string               `json:"comparison"`
	Interpretation      string               `json:"interpretation"`
	ConfidenceLevel     string               `json:"confidenceLevel"`
	ComparableMaterials []ComparableMaterial `json:"comparableMaterials"`
}

// Confidence explains ConfidenceLevel.
type Confidence struct {
	AverageSimilarity float64 `json:"averageSimilarity"`
	SimilarityDetail  string  `json:"similarityDetail"`
}

// Response is the envelope returned for a successful assessment.
type Response struct {
	Result     Result     `json:"result"`
	Source     string     `json:"source"`
	Confidence Confidence `json:"confidence"`
	Disclaimer string     `json:"disclaimer"`
}

type Limitation struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Insights is the body of GET /api/v1/insights.
type Insights struct {
	MaterialType string       `json:"materialType"`
	Properties   []string     `json:"properties"`
	Assumptions  []string     `json:"assumptions"`
	Limitations  []Limitation `json:"limitations"`
	Disclaimer   string       `json:"disclaimer"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CorpusSummary is the body of GET /api/v1/corpus.
type CorpusSummary struct {
	Loaded  bool             `json:"loaded"`
	Records int              `json:"records"`
	Bounds  map[string]Range `json:"bounds"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	Transient bool   `json:"transient,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (e ErrorResponse) String() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

//Personal.AI order the ending
