package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "rustmut.dev/pkg/rustmut/internal/model"
)

func TestRootCmd_ShowsHelp(t *testing.T) {
	cmd := newRootCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "rustmut")
}

func TestDirFromArgs(t *testing.T) {
	assert.Equal(t, m.Path("."), dirFromArgs(nil))
	assert.Equal(t, m.Path("/work/tree"), dirFromArgs([]string{"/work/tree"}))
}
