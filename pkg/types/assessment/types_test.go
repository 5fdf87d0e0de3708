package assessment

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

func TestRequest_Validate(t *testing.T) {
	assert.NoError(t, NewRequest("polymer", 500, 30, "open-air").Validate())

	var r Request
	require.NoError(t, json.Unmarshal([]byte(`{"materialType":"polymer","temperature":0,"environment":"enclosed"}`), &r))
	err := r.Validate()
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
	assert.Contains(t, err.Error(), "exposureTime")
	assert.NotContains(t, err.Error(), "temperature")

	err = Request{}.Validate()
	assert.Contains(t, err.Error(), "materialType, temperature, exposureTime, environment")
}

func TestRequest_ValidateRejectsNonFinite(t *testing.T) {
	r := NewRequest("polymer", math.Inf(1), 30, "open-air")
	assert.True(t, errors.IsCode(r.Validate(), errors.ErrCodeValidation))
}

func TestRequest_OutOfDomainIsAccepted(t *testing.T) {
	assert.NoError(t, NewRequest("unobtainium", 5000, -3, "space").Validate())
}

func TestResult_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Result{ComparableMaterials: []ComparableMaterial{}})
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	for _, k := range []string{"riskScore", "riskClass", "resistanceIndex", "comparison", "interpretation", "confidenceLevel", "comparableMaterials"} {
		assert.Contains(t, m, k)
	}
	assert.Len(t, m, 7)
}

func TestErrorResponse_String(t *testing.T) {
	assert.Equal(t, "[RISK_002] bad gateway: HTTP 500", ErrorResponse{Code: "RISK_002", Message: "bad gateway", Detail: "HTTP 500"}.String())
	assert.Equal(t, "[COMMON_001] boom", ErrorResponse{Code: "COMMON_001", Message: "boom"}.String())
}

//Personal.AI order the ending
