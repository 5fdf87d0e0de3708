package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ScenarioCorpusJSON holds two records. The first sits exactly on the
// default input (polymer, 500 degrees, 30 minutes, open air).
const ScenarioCorpusJSON = `{
  "minmax": {"HEAT FLUX": [0, 1000], "TIME TO IGN": [0, 60], "FLOW FACTOR": [0.85, 1.15]},
  "records": [
    {"materialName": "PMMA sheet", "materialType": "polymer", "heatFlux": 500, "timeToIgn": 30, "flowFactor": 0.85, "riskScore": 66},
    {"materialName": "Gypsum board", "materialType": "generic", "heatFlux": 900, "timeToIgn": 60, "flowFactor": 1.15, "riskScore": 38}
  ]
}`

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteScenarioCorpus writes ScenarioCorpusJSON and returns its path.
func WriteScenarioCorpus(t *testing.T) string {
	t.Helper()
	return WriteFile(t, "corpus.json", ScenarioCorpusJSON)
}

// FailingSource is a corpus.Source whose Fetch always fails.
type FailingSource struct {
	Location string
}

func (s FailingSource) Name() string {
	if s.Location == "" {
		return "s3://refs/corpus.json"
	}
	return s.Location
}

func (s FailingSource) Fetch(context.Context) ([]byte, error) {
	return nil, fmt.Errorf("fetch %s: connection refused", s.Name())
}

//Personal.AI order the ending
