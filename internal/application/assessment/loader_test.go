package assessment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/testutil"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

func writeCorpus(t *testing.T) corpus.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	doc := `{"records": [
		{"materialName": "Nylon 6", "heatFlux": 500, "timeToIgn": 30, "flowFactor": 0.85, "riskScore": 60},
		{"materialName": "Gypsum", "heatFlux": 900, "timeToIgn": 120, "flowFactor": 1.15, "riskScore": 20},
		{"materialName": "bad", "heatFlux": "n/a", "timeToIgn": 1, "flowFactor": 1, "riskScore": 1}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return corpus.FileSource{Path: path}
}

func TestLoadCorpus(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	c, report, err := LoadCorpus(context.Background(), writeCorpus(t), logger)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, logger.Count("warn"))
	assert.True(t, logger.HasMessage("info", "reference corpus loaded"))
}

func TestLoadCorpus_Failure(t *testing.T) {
	_, _, err := LoadCorpus(context.Background(), testutil.FailingSource{}, logging.NewNopLogger())
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusLoadFailed))
	assert.Contains(t, err.Error(), "s3://refs/corpus.json")
}

func TestReload_KeepsCurrentCorpusOnFailure(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("RecordCorpusLoad", 2, nil).Once()
	metrics.On("RecordCorpusLoad", 0, mock.Anything).Once()
	logger := testutil.NewRecordingLogger()
	e := NewEngine(nil, WithMetrics(metrics), WithLogger(logger))

	_, err := e.Reload(context.Background(), writeCorpus(t))
	require.NoError(t, err)
	assert.True(t, e.Ready())

	_, err = e.Reload(context.Background(), testutil.FailingSource{})
	assert.Error(t, err)
	assert.Equal(t, 2, e.Corpus().Len())
	assert.True(t, logger.HasMessage("warn", "corpus reload failed, keeping current corpus"))
	metrics.AssertExpectations(t)
}

func TestLoadOrEmpty(t *testing.T) {
	e := NewEngine(fixtureCorpus(t))
	e.LoadOrEmpty(context.Background(), testutil.FailingSource{})
	assert.False(t, e.Ready())

	e.LoadOrEmpty(context.Background(), writeCorpus(t))
	assert.True(t, e.Ready())

	e.LoadOrEmpty(context.Background(), nil)
	assert.True(t, e.Ready())
}

//Personal.AI order the ending
