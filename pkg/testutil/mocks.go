package testutil

import "github.com/stretchr/testify/mock"

// MockConfirmer answers overwrite confirmations from test expectations
type MockConfirmer struct {
	mock.Mock
}

// Confirm records the prompt and returns the configured answer
func (m *MockConfirmer) Confirm(prompt string) (bool, error) {
	args := m.Called(prompt)
	return args.Bool(0), args.Error(1)
}

// StaticConfirmer always gives the same answer
type StaticConfirmer bool

func (s StaticConfirmer) Confirm(string) (bool, error) {
	return bool(s), nil
}
