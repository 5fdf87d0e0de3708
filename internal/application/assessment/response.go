package assessment

import (
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/risk"
	dto "github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

// Response converts a to its wire envelope, disclaimer included.
func (a *Assessment) Response() dto.Response {
	comparables := make([]dto.ComparableMaterial, 0, len(a.Result.ComparableMaterials))
	for _, c := range a.Result.ComparableMaterials {
		comparables = append(comparables, dto.ComparableMaterial{
			Name:            c.Name,
			SimilarityLevel: string(c.SimilarityLevel),
			RelativeRisk:    string(c.RelativeRisk),
		})
	}
	return dto.Response{
		Result: dto.Result{
			RiskScore:           a.Result.RiskScore,
			RiskClass:           string(a.Result.RiskClass),
			ResistanceIndex:     a.Result.ResistanceIndex,
			Comparison:          a.Result.Comparison,
			Interpretation:      a.Result.Interpretation,
			ConfidenceLevel:     string(a.Result.ConfidenceLevel),
			ComparableMaterials: comparables,
		},
		Source: a.Source.String(),
		Confidence: dto.Confidence{
			AverageSimilarity: a.Confidence.AverageSimilarity,
			SimilarityDetail:  a.Confidence.SimilarityDetail,
		},
		Disclaimer: risk.Disclaimer,
	}
}

// InsightsResponse returns the background block for t on the wire.
func InsightsResponse(t material.MaterialType) dto.Insights {
	in := risk.InsightsFor(t)
	limits := make([]dto.Limitation, 0, len(in.Limitations))
	for _, l := range in.Limitations {
		limits = append(limits, dto.Limitation{Title: l.Title, Text: l.Text})
	}
	return dto.Insights{
		MaterialType: string(in.MaterialType),
		Properties:   in.Properties,
		Assumptions:  in.Assumptions,
		Limitations:  limits,
		Disclaimer:   risk.Disclaimer,
	}
}

// Summary describes c for the corpus endpoint and CLI.
func Summary(c *corpus.Corpus) dto.CorpusSummary {
	bounds := make(map[string]dto.Range)
	for f, r := range c.Bounds().Map() {
		bounds[string(f)] = dto.Range{Min: r.Min, Max: r.Max}
	}
	return dto.CorpusSummary{
		Loaded:  !c.IsEmpty(),
		Records: c.Len(),
		Bounds:  bounds,
	}
}

// ToInput converts a validated wire request into an InputSpec.
func ToInput(req dto.Request) material.InputSpec {
	in := material.InputSpec{
		MaterialType: material.ParseMaterialType(req.MaterialType),
		Environment:  material.ParseEnvironment(req.Environment),
	}
	if req.Temperature != nil {
		in.Temperature = *req.Temperature
	}
	if req.ExposureTime != nil {
		in.ExposureTime = *req.ExposureTime
	}
	return in
}

//Personal.AI order the ending
