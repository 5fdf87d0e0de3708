package testutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/testutil"
)

func TestRecordingLogger(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	logger.Info("started", logging.Int("records", 2))
	child := logger.Named("engine").Named("matcher")
	child.Warn("corpus empty")
	child.With(logging.String("k", "v")).Error("failed")

	msgs := logger.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "", msgs[0].Logger)
	assert.Equal(t, "engine.matcher", msgs[1].Logger)
	assert.True(t, logger.HasMessage("warn", "corpus empty"))
	assert.False(t, logger.HasMessage("info", "corpus empty"))
	assert.Equal(t, 1, logger.Count("error"))
}

func TestScenarioCorpusDecodes(t *testing.T) {
	data, err := os.ReadFile(testutil.WriteScenarioCorpus(t))
	require.NoError(t, err)
	c, report, err := corpus.Decode(data, corpus.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Zero(t, report.Skipped)
}

func TestFailingSource(t *testing.T) {
	var src corpus.Source = testutil.FailingSource{}
	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "s3://refs/corpus.json")
	assert.Equal(t, "/tmp/x.json", testutil.FailingSource{Location: "/tmp/x.json"}.Name())
}

//Personal.AI order the ending
