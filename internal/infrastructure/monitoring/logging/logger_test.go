package logging

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func newTestLogger(t *testing.T, level zapcore.Level) (*zapLogger, *zaptest.Buffer) {
	t.Helper()
	buf := &zaptest.Buffer{}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	atom := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), buf, atom)
	return &zapLogger{z: zap.New(core), level: atom}, buf
}

func decodeLines(t *testing.T, buf *zaptest.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range buf.Lines() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(LogConfig{Level: "debug", Format: format, OutputPaths: []string{"stdout"}})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_BadOutputPath(t *testing.T) {
	l, err := NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir/x/y.log"}})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestZapLogger_WritesTypedFields(t *testing.T) {
	l, buf := newTestLogger(t, zapcore.DebugLevel)

	l.Info("assessment complete",
		String("source", "local"),
		Int("risk_score", 66),
		Float64("avg_similarity", 0.82),
		Bool("remote", false),
		Duration("elapsed", 3*time.Millisecond),
		Err(errors.New("boom")),
	)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "assessment complete", entry["msg"])
	assert.Equal(t, "local", entry["source"])
	assert.EqualValues(t, 66, entry["risk_score"])
	assert.Equal(t, 0.82, entry["avg_similarity"])
	assert.Equal(t, false, entry["remote"])
	assert.Equal(t, "boom", entry["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, buf := newTestLogger(t, zapcore.DebugLevel)

	child := l.Named("engine").With(String("request_id", "r-1"))
	child.Warn("corpus empty")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "engine", lines[0]["logger"])
	assert.Equal(t, "r-1", lines[0]["request_id"])
}

func TestZapLogger_SetLevelAffectsChildren(t *testing.T) {
	l, buf := newTestLogger(t, zapcore.InfoLevel)
	child := l.Named("http")

	child.Debug("hidden")
	assert.Empty(t, decodeLines(t, buf))

	require.NoError(t, l.SetLevel("debug"))
	child.Debug("visible")
	assert.Len(t, decodeLines(t, buf), 1)

	assert.Error(t, l.SetLevel("verbose"))
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestNopLogger_AllMethodsNoOp(t *testing.T) {
	l := NewNopLogger()
	l.Debug("msg")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("x"))
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	l, _ := newTestLogger(t, zapcore.InfoLevel)
	SetDefault(l)
	assert.Same(t, l, Default())

	SetDefault(nil)
	assert.Same(t, l, Default())
}

func TestNewLoggerFromCore(t *testing.T) {
	buf := &zaptest.Buffer{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), buf, zapcore.InfoLevel)
	l := NewLoggerFromCore(core)
	l.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

//Personal.AI order the ending
