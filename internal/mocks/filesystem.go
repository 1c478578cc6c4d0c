// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"os"

	"github.com/stretchr/testify/mock"
)

// MockFileSystemAdapter is a testify mock of domain.FileSystemAdapter.
type MockFileSystemAdapter struct {
	mock.Mock
}

// NewMockFileSystemAdapter creates a mock that asserts its expectations at test cleanup.
func NewMockFileSystemAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileSystemAdapter {
	m := &MockFileSystemAdapter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileSystemAdapter) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockFileSystemAdapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return m.Called(path, data, perm).Error(0)
}

func (m *MockFileSystemAdapter) MkdirAll(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) UserHomeDir() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
