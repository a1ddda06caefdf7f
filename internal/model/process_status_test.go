package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProcessStatusSuccess(t *testing.T) {
	assert.True(t, Exited(0, time.Second).Success())
	assert.False(t, Exited(1, time.Second).Success())
	assert.False(t, Signalled(9, time.Second).Success())
	assert.False(t, TimedOut(time.Second).Success())
}

func TestProcessStatusString(t *testing.T) {
	assert.Equal(t, "ok", Exited(0, 0).String())
	assert.Equal(t, "exit 101", Exited(101, 0).String())
	assert.Equal(t, "signal 9", Signalled(9, 0).String())
	assert.Equal(t, "timeout", TimedOut(0).String())
}
