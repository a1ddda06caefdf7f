package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "check", PhaseCheck.String())
	assert.Equal(t, "build", PhaseBuild.String())
	assert.Equal(t, "test", PhaseTest.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestBaselinePhasesOrder(t *testing.T) {
	assert.Equal(t, []Phase{PhaseCheck, PhaseBuild, PhaseTest}, BaselinePhases())
}
