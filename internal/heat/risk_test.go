package heat

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		heatIndex float64
		want      RiskLevel
	}{
		{"cold", -10, RiskGood},
		{"just below moderate", 29.9, RiskGood},
		{"moderate lower bound", 30.0, RiskModerate},
		{"just below risky", 34.9, RiskModerate},
		{"risky lower bound", 35.0, RiskRisky},
		{"just below dangerous", 39.9, RiskRisky},
		{"dangerous lower bound", 40.0, RiskDangerous},
		{"extreme", 55, RiskDangerous},
		{"positive infinity", math.Inf(1), RiskDangerous},
		{"negative infinity", math.Inf(-1), RiskGood},
		{"not a number", math.NaN(), RiskDangerous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.heatIndex)
			assert.Equal(t, tt.want, got.Level)
		})
	}
}

func TestClassify_AdviceText(t *testing.T) {
	tests := []struct {
		heatIndex float64
		advice    string
		tip       string
	}{
		{25, "Ideal for running. Stay hydrated.", "No change"},
		{32, "Run slower, hydrate more.", "Reduce pace by 5–10%"},
		{37, "Consider running early or indoors.", "Reduce pace by 15–20%"},
		{42, "Avoid running outside.", "Avoid running"},
	}

	for _, tt := range tests {
		got := Classify(tt.heatIndex)
		assert.Equal(t, tt.advice, got.Advice)
		assert.Equal(t, tt.tip, got.ActionTip)
	}
}

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "Good", RiskGood.String())
	assert.Equal(t, "Moderate", RiskModerate.String())
	assert.Equal(t, "Risky", RiskRisky.String())
	assert.Equal(t, "Dangerous", RiskDangerous.String())
	assert.Equal(t, "RiskLevel(9)", RiskLevel(9).String())
}

func TestRiskLevel_JSON(t *testing.T) {
	data, err := json.Marshal(Classify(36))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"Risky"`)

	var decoded RiskAssessment
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, RiskRisky, decoded.Level)
}

func TestRiskLevel_UnmarshalText(t *testing.T) {
	var level RiskLevel
	require.NoError(t, level.UnmarshalText([]byte("dangerous")))
	assert.Equal(t, RiskDangerous, level)

	err := level.UnmarshalText([]byte("scorching"))
	assert.Error(t, err)

	_, err = RiskLevel(42).MarshalText()
	assert.Error(t, err)
}
