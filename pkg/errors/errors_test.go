package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal", errors.CodeInternal, "unexpected failure"},
		{"predictor status", errors.ErrCodePredictorStatus, "predictor returned 500"},
		{"invalid param", errors.CodeInvalidParam, "temperature is required"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)
			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestAppError_ErrorFormat(t *testing.T) {
	ae := errors.New(errors.ErrCodePredictorStatus, "bad status")
	assert.Equal(t, "[RISK_002] bad status", ae.Error())
	assert.Equal(t, "[RISK_002] bad status: status=500", ae.WithDetail("status=500").Error())
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	root := stderrors.New("connection refused")
	wrapped := errors.Wrap(root, errors.ErrCodePredictorUnavailable, "call predictor")

	require.NotNil(t, wrapped)
	assert.True(t, stderrors.Is(wrapped, root))
	assert.Equal(t, root, wrapped.Unwrap())
}

func TestWrap_UnknownCodeKeepsOriginal(t *testing.T) {
	inner := errors.New(errors.ErrCodeCorpusLoadFailed, "decode")
	outer := errors.Wrap(inner, errors.CodeUnknown, "load corpus")
	assert.Equal(t, errors.ErrCodeCorpusLoadFailed, outer.Code)
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	orig := errors.New(errors.CodeInternal, "x")
	clone := orig.WithDetail("d")
	assert.Empty(t, orig.Detail)
	assert.Equal(t, "d", clone.Detail)

	var nilErr *errors.AppError
	assert.Nil(t, nilErr.WithDetail("d"))
	assert.Nil(t, nilErr.WithCause(stderrors.New("x")))
}

func TestIsCode_ThroughFmtWrapping(t *testing.T) {
	ae := errors.New(errors.ErrCodePredictorMalformed, "bad json")
	err := fmt.Errorf("assess: %w", ae)
	assert.True(t, errors.IsCode(err, errors.ErrCodePredictorMalformed))
	assert.False(t, errors.IsCode(err, errors.ErrCodePredictorStatus))
	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", stderrors.New("x"), false},
		{"unavailable", errors.New(errors.ErrCodePredictorUnavailable, "dial"), true},
		{"status", errors.New(errors.ErrCodePredictorStatus, "500"), true},
		{"malformed", errors.New(errors.ErrCodePredictorMalformed, "json"), true},
		{"timeout", errors.New(errors.ErrCodeTimeout, "deadline"), true},
		{"wrapped", fmt.Errorf("ctx: %w", errors.New(errors.ErrCodePredictorStatus, "503")), true},
		{"validation", errors.InvalidParam("bad"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errors.IsTransient(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("x")))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(errors.NotFound("gone")))
	assert.True(t, errors.IsNotFound(errors.NotFound("gone")))
}

//Personal.AI order the ending
