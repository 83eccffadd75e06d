package heat

import (
	"fmt"
	"math"
	"strings"
)

// RiskLevel is the running risk bucket for a heat index
type RiskLevel int

const (
	RiskGood RiskLevel = iota
	RiskModerate
	RiskRisky
	RiskDangerous
)

var riskLevelNames = map[RiskLevel]string{
	RiskGood:      "Good",
	RiskModerate:  "Moderate",
	RiskRisky:     "Risky",
	RiskDangerous: "Dangerous",
}

func (l RiskLevel) String() string {
	if name, ok := riskLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("RiskLevel(%d)", int(l))
}

// MarshalText encodes the level by name
func (l RiskLevel) MarshalText() ([]byte, error) {
	if _, ok := riskLevelNames[l]; !ok {
		return nil, fmt.Errorf("unknown risk level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name, case-insensitively
func (l *RiskLevel) UnmarshalText(text []byte) error {
	for level, name := range riskLevelNames {
		if strings.EqualFold(name, string(text)) {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", string(text))
}

// RiskAssessment is the advice attached to a heat index
type RiskAssessment struct {
	Level     RiskLevel `json:"level"`
	Advice    string    `json:"advice"`
	ActionTip string    `json:"action_tip"`
}

// Risk band lower bounds in °C, inclusive.
const (
	moderateFromC  = 30.0
	riskyFromC     = 35.0
	dangerousFromC = 40.0
)

// Classify maps a heat index in °C to a risk assessment.
// NaN is treated as Dangerous so bad input never reads as safe.
func Classify(heatIndexC float64) RiskAssessment {
	switch {
	case math.IsNaN(heatIndexC):
		return assessments[RiskDangerous]
	case heatIndexC < moderateFromC:
		return assessments[RiskGood]
	case heatIndexC < riskyFromC:
		return assessments[RiskModerate]
	case heatIndexC < dangerousFromC:
		return assessments[RiskRisky]
	default:
		return assessments[RiskDangerous]
	}
}

var assessments = map[RiskLevel]RiskAssessment{
	RiskGood: {
		Level:     RiskGood,
		Advice:    "Ideal for running. Stay hydrated.",
		ActionTip: "No change",
	},
	RiskModerate: {
		Level:     RiskModerate,
		Advice:    "Run slower, hydrate more.",
		ActionTip: "Reduce pace by 5–10%",
	},
	RiskRisky: {
		Level:     RiskRisky,
		Advice:    "Consider running early or indoors.",
		ActionTip: "Reduce pace by 15–20%",
	},
	RiskDangerous: {
		Level:     RiskDangerous,
		Advice:    "Avoid running outside.",
		ActionTip: "Avoid running",
	},
}
