// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"rustmut.dev/pkg/rustmut/internal/domain"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted when
// the test finishes.
func NewMockWorkflow(t *testing.T) *MockWorkflow {
	t.Helper()

	workflow := &MockWorkflow{}
	workflow.Mock.Test(t)

	t.Cleanup(func() { workflow.AssertExpectations(t) })

	return workflow
}

// Baseline mocks domain.Workflow.Baseline.
func (w *MockWorkflow) Baseline(ctx context.Context, args domain.BaselineArgs) error {
	called := w.Called(ctx, args)

	return called.Error(0)
}

// Discover mocks domain.Workflow.Discover.
func (w *MockWorkflow) Discover(ctx context.Context, dir m.Path) (m.Path, []m.SourceFile, error) {
	called := w.Called(ctx, dir)

	var files []m.SourceFile
	if got := called.Get(1); got != nil {
		files = got.([]m.SourceFile)
	}

	return called.Get(0).(m.Path), files, called.Error(2)
}

// Locate mocks domain.Workflow.Locate.
func (w *MockWorkflow) Locate(ctx context.Context, dir m.Path) (m.Path, error) {
	called := w.Called(ctx, dir)

	return called.Get(0).(m.Path), called.Error(1)
}
