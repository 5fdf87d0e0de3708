package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
)

// Raw test-data columns consumed by BuildFromCSV.
const (
	colMaterial     = "MATERIAL"
	colSurfArea     = "SURF AREA"
	colSpecimenMass = "SPECIMEN MASS"
	colCFactor      = "C FACTOR"
)

// proxyWeights drive the reference risk score of raw test rows. Time to
// ignition and specimen mass are inverted: faster ignition and lighter
// specimens mean more risk.
var proxyWeights = []struct {
	column   string
	weight   float64
	inverted bool
}{
	{string(HeatFlux), 0.35, false},
	{string(TimeToIgn), 0.30, true},
	{colSurfArea, 0.15, false},
	{string(FlowFactor), 0.10, false},
	{colSpecimenMass, 0.05, true},
	{colCFactor, 0.05, false},
}

// BuildFromCSV turns raw cone-calorimeter style rows into a Corpus. Each
// row's reference score is a weighted sum of min-max normalized columns,
// scaled to [0,100]. Empty or unparseable numeric cells take the column
// median.
func BuildFromCSV(r io.Reader) (*Corpus, LoadReport, error) {
	var report LoadReport

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, report, fmt.Errorf("corpus: read csv: %w", err)
	}
	if len(rows) < 2 {
		return Empty(), report, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, w := range proxyWeights {
		if _, ok := header[w.column]; !ok {
			missing = append(missing, w.column)
		}
	}
	if len(missing) > 0 {
		return nil, report, fmt.Errorf("corpus: missing required columns %v", missing)
	}

	data := rows[1:]
	columns := make(map[string][]float64, len(proxyWeights))
	for _, w := range proxyWeights {
		col, err := numericColumn(data, header[w.column])
		if err != nil {
			return nil, report, fmt.Errorf("corpus: column %q: %w", w.column, err)
		}
		columns[w.column] = col
	}

	normalized := make(map[string][]float64, len(columns))
	for name, col := range columns {
		normalized[name] = minMaxScale(col)
	}

	matIdx, hasMaterial := header[colMaterial]
	records := make([]ReferenceRecord, 0, len(data))
	for i, row := range data {
		var score float64
		for _, w := range proxyWeights {
			v := normalized[w.column][i]
			if w.inverted {
				v = 1 - v
			}
			score += w.weight * v
		}
		rec := ReferenceRecord{
			HeatFlux:   columns[string(HeatFlux)][i],
			TimeToIgn:  columns[string(TimeToIgn)][i],
			FlowFactor: columns[string(FlowFactor)][i],
			RiskScore:  math.Max(0, math.Min(100, score*100)),
		}
		if hasMaterial && matIdx < len(row) {
			rec.MaterialName = strings.TrimSpace(row[matIdx])
		}
		rec.MaterialType = material.Classify(rec.MaterialName)
		records = append(records, rec)
	}
	report.Records = len(records)
	return New(records, ComputeBounds(records)), report, nil
}

func numericColumn(rows [][]string, idx int) ([]float64, error) {
	values := make([]float64, len(rows))
	present := make([]float64, 0, len(rows))
	ok := make([]bool, len(rows))
	for i, row := range rows {
		if idx >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values[i], ok[i] = v, true
		present = append(present, v)
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("no numeric values")
	}
	med := median(present)
	for i := range values {
		if !ok[i] {
			values[i] = med
		}
	}
	return values, nil
}

func median(vs []float64) float64 {
	s := append([]float64(nil), vs...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func minMaxScale(col []float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range col {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	out := make([]float64, len(col))
	if hi == lo {
		return out
	}
	for i, v := range col {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// Document is the canonical on-disk shape written by Encode.
type Document struct {
	MinMax  map[Feature][2]float64 `json:"minmax" yaml:"minmax"`
	Records []ReferenceRecord      `json:"records" yaml:"records"`
}

// Encode writes c in the document format Decode reads.
func Encode(c *Corpus, format Format) ([]byte, error) {
	doc := Document{MinMax: map[Feature][2]float64{}, Records: c.Records()}
	if doc.Records == nil {
		doc.Records = []ReferenceRecord{}
	}
	for f, r := range c.Bounds().Map() {
		doc.MinMax[f] = [2]float64{r.Min, r.Max}
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON, FormatAuto:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("corpus: unsupported format %q", format)
	}
}

//Personal.AI order the ending
