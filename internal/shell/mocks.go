package shell

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	callArgs := []interface{}{ctx, dir, name}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	ret := m.Called(callArgs...)
	return ret.String(0), ret.Error(1)
}
