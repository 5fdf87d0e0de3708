package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// Format is the encoding of a corpus document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatAuto Format = ""
)

// FormatFromName picks a format from a file or object name extension.
func FormatFromName(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	default:
		return FormatAuto
	}
}

// LoadReport summarises a decode.
type LoadReport struct {
	Records int      `json:"records"`
	Skipped int      `json:"skipped"`
	Issues  []string `json:"issues,omitempty"`
}

type rawDocument struct {
	MinMax  map[string]interface{} `json:"minmax" yaml:"minmax"`
	Records []interface{}          `json:"records" yaml:"records"`
}

// Field aliases accepted for each record attribute. The upper-case names
// match the raw test-data columns.
var (
	nameKeys      = []string{"materialName", "material_name", "MATERIAL", "name"}
	typeKeys      = []string{"materialType", "material_type"}
	heatFluxKeys  = []string{"heatFlux", "heat_flux", string(HeatFlux)}
	timeToIgnKeys = []string{"timeToIgn", "time_to_ign", string(TimeToIgn)}
	flowKeys      = []string{"flowFactor", "flow_factor", string(FlowFactor)}
	riskKeys      = []string{"riskScore", "risk_score"}
)

// Decode parses a corpus document. Malformed records and bounds entries are
// skipped and listed in the report; only an unparseable document is an error.
func Decode(data []byte, format Format) (*Corpus, LoadReport, error) {
	var doc rawDocument
	var report LoadReport

	if format == FormatAuto {
		format = sniff(data)
	}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, report, fmt.Errorf("corpus: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, report, fmt.Errorf("corpus: decode yaml: %w", err)
		}
	default:
		return nil, report, fmt.Errorf("corpus: unsupported format %q", format)
	}

	records := make([]ReferenceRecord, 0, len(doc.Records))
	for i, entry := range doc.Records {
		raw, ok := entry.(map[string]interface{})
		if !ok {
			report.Skipped++
			report.Issues = append(report.Issues, fmt.Sprintf("records[%d]: not an object", i))
			continue
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			report.Skipped++
			report.Issues = append(report.Issues, fmt.Sprintf("records[%d]: %v", i, err))
			continue
		}
		records = append(records, rec)
	}
	report.Records = len(records)

	ranges := make(map[Feature]Range, len(doc.MinMax))
	for _, f := range Features {
		raw, ok := doc.MinMax[string(f)]
		if !ok {
			continue
		}
		r, err := decodeRange(raw)
		if err != nil {
			report.Issues = append(report.Issues, fmt.Sprintf("minmax[%s]: %v", f, err))
			continue
		}
		ranges[f] = r
	}
	bounds, _ := NewBounds(ranges)

	return New(records, bounds), report, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func decodeRecord(raw map[string]interface{}) (ReferenceRecord, error) {
	var rec ReferenceRecord
	var err error

	rec.MaterialName, _ = lookupString(raw, nameKeys)
	if t, ok := lookupString(raw, typeKeys); ok && t != "" {
		rec.MaterialType = material.ParseMaterialType(t)
	} else {
		rec.MaterialType = material.Classify(rec.MaterialName)
	}
	if rec.HeatFlux, err = lookupNumber(raw, heatFluxKeys); err != nil {
		return rec, fmt.Errorf("heat flux: %w", err)
	}
	if rec.TimeToIgn, err = lookupNumber(raw, timeToIgnKeys); err != nil {
		return rec, fmt.Errorf("time to ignition: %w", err)
	}
	if rec.FlowFactor, err = lookupNumber(raw, flowKeys); err != nil {
		return rec, fmt.Errorf("flow factor: %w", err)
	}
	if rec.RiskScore, err = lookupNumber(raw, riskKeys); err != nil {
		return rec, fmt.Errorf("risk score: %w", err)
	}
	return rec, nil
}

func decodeRange(raw interface{}) (Range, error) {
	var r Range
	var err error
	switch v := raw.(type) {
	case []interface{}:
		if len(v) != 2 {
			return r, fmt.Errorf("expected [min, max], got %d values", len(v))
		}
		if r.Min, err = toFloat(v[0]); err != nil {
			return r, err
		}
		if r.Max, err = toFloat(v[1]); err != nil {
			return r, err
		}
	case map[string]interface{}:
		if r.Min, err = lookupNumber(v, []string{"min"}); err != nil {
			return r, err
		}
		if r.Max, err = lookupNumber(v, []string{"max"}); err != nil {
			return r, err
		}
	default:
		return r, fmt.Errorf("unsupported bounds value %T", raw)
	}
	if !r.Valid() {
		return r, fmt.Errorf("min %v greater than max %v", r.Min, r.Max)
	}
	return r, nil
}

func lookupString(raw map[string]interface{}, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s), true
			}
			return fmt.Sprint(v), true
		}
	}
	return "", false
}

func lookupNumber(raw map[string]interface{}, keys []string) (float64, error) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return toFloat(v)
		}
	}
	return 0, fmt.Errorf("missing")
}

func toFloat(v interface{}) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value")
	}
	return f, nil
}

//Personal.AI order the ending
