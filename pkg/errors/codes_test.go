package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", ErrCodeInternal.String())
	assert.Equal(t, "RISK_001", ErrCodePredictorUnavailable.String())
}

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInternal, 500},
		{ErrCodeBadRequest, 400},
		{ErrCodeNotFound, 404},
		{ErrCodeValidation, 422},
		{ErrCodePredictorUnavailable, 503},
		{ErrCodePredictorStatus, 502},
		{ErrCodePredictorMalformed, 502},
		{ErrCodeUnknownScoreSource, 400},
		{ErrorCode("UNKNOWN"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatusForCode(tt.code), tt.code)
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "internal server error", DefaultMessageForCode(ErrCodeInternal))
	assert.Equal(t, "remote predictor unavailable", DefaultMessageForCode(ErrCodePredictorUnavailable))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("UNKNOWN")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeBadRequest))
	assert.True(t, IsClientError(ErrCodeUnknownScoreSource))
	assert.False(t, IsClientError(ErrCodeInternal))
}

func TestIsServerError(t *testing.T) {
	assert.True(t, IsServerError(ErrCodePredictorStatus))
	assert.False(t, IsServerError(ErrCodeValidation))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "RISK", ModuleForCode(ErrCodeCorpusLoadFailed))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeTimeout))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestCodesAreWellFormedAndMapped(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	for code := range ErrorCodeHTTPStatus {
		assert.Regexp(t, pattern, string(code))
		_, ok := ErrorCodeMessage[code]
		assert.True(t, ok, "missing message for %s", code)
	}
}

//Personal.AI order the ending
