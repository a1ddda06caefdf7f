package controller

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

// The Bubble Tea model is tested directly; driving a real terminal program
// from a test adds nothing here.

func updateModel(t *testing.T, model tea.Model, msg tea.Msg) runModel {
	t.Helper()

	updated, _ := model.Update(msg)

	rm, ok := updated.(runModel)
	if !ok {
		t.Fatalf("Update returned %T, want runModel", updated)
	}

	return rm
}

func TestRunModel_PhaseLifecycle(t *testing.T) {
	model := newRunModel()

	model = updateModel(t, model, phaseStartedMsg{phase: m.PhaseBuild})
	assert.Contains(t, model.View(), "cargo build")

	model = updateModel(t, model, tickMsg{})
	assert.True(t, model.running)

	model = updateModel(t, model, phaseFinishedMsg{phase: m.PhaseBuild, status: m.Exited(0, 2*time.Second)})
	assert.False(t, model.running)

	view := model.View()
	assert.Contains(t, view, "cargo build")
	assert.Contains(t, view, "ok")
	assert.Contains(t, view, "2.0s")
}

func TestRunModel_FailedPhaseKeepsStatus(t *testing.T) {
	model := newRunModel()

	model = updateModel(t, model, phaseStartedMsg{phase: m.PhaseTest})
	model = updateModel(t, model, phaseFinishedMsg{phase: m.PhaseTest, status: m.Exited(101, time.Second)})

	assert.Contains(t, model.View(), "exit 101")
}

func TestRunModel_ViewEmptyBeforeAnyPhase(t *testing.T) {
	model := newRunModel()
	assert.Equal(t, "", strings.TrimSpace(model.View()))
}
