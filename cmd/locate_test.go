package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rustmut.dev/pkg/rustmut/internal/controller"
	domainmocks "rustmut.dev/pkg/rustmut/internal/domain/mocks"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

func TestLocateCmd_PrintsRoot(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd, out := newTestRoot(t, newLocateCmd)

	originalWorkflow := workflow
	originalUI := ui
	workflow = mockWorkflow
	ui = controller.NewSimpleUI(cmd)

	defer func() {
		workflow = originalWorkflow
		ui = originalUI
	}()

	mockWorkflow.On("Locate", mock.Anything, m.Path("/work/tree/src")).
		Return(m.Path("/work/tree"), nil)

	cmd.SetArgs([]string{"locate", "/work/tree/src"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "/work/tree\n", out.String())
}
