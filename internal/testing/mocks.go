package testing

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/gefkit/platform/input"
)

// MockBackend is a testify mock of input.Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Name() string {
	return m.Called().String(0)
}

func (m *MockBackend) Poll() (input.RawFrame, error) {
	args := m.Called()
	f, _ := args.Get(0).(input.RawFrame)
	return f, args.Error(1)
}

func (m *MockBackend) SendOutput(out input.DualSenseOutput) error {
	return m.Called(out).Error(0)
}

func (m *MockBackend) Close() error {
	return m.Called().Error(0)
}

// MockEnumerator is a testify mock of input.Enumerator.
type MockEnumerator struct {
	mock.Mock
}

func (m *MockEnumerator) Enumerate(max int) ([]input.Backend, error) {
	args := m.Called(max)
	b, _ := args.Get(0).([]input.Backend)
	return b, args.Error(1)
}

// CreateMockBackend returns a backend whose Name always answers and whose
// expectations are asserted when the test ends.
func CreateMockBackend(t *testing.T, name string) *MockBackend {
	b := &MockBackend{}
	b.On("Name").Return(name).Maybe()
	t.Cleanup(func() { b.AssertExpectations(t) })
	return b
}

// CreateMockEnumerator returns an enumerator yielding backends for any cap.
func CreateMockEnumerator(t *testing.T, backends []input.Backend, err error) *MockEnumerator {
	e := &MockEnumerator{}
	e.On("Enumerate", mock.Anything).Return(backends, err)
	t.Cleanup(func() { e.AssertExpectations(t) })
	return e
}

// Backends converts mocks to a backend slice.
func Backends(mocks ...*MockBackend) []input.Backend {
	out := make([]input.Backend, len(mocks))
	for i, m := range mocks {
		out[i] = m
	}
	return out
}
