package testing

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of the config.Store interface.
// It can be used across all tests that need to observe write-backs of
// provisioned resource attributes.
type MockStore struct {
	mock.Mock
}

// SaveRoleARN records the role ARN write-back.
func (m *MockStore) SaveRoleARN(arn string) error {
	args := m.Called(arn)
	return args.Error(0)
}

// SaveClusterHost records the endpoint host write-back.
func (m *MockStore) SaveClusterHost(host string) error {
	args := m.Called(host)
	return args.Error(0)
}

// NewMockStore creates a MockStore that accepts any write-back.
func NewMockStore() *MockStore {
	m := &MockStore{}
	m.On("SaveRoleARN", mock.Anything).Return(nil)
	m.On("SaveClusterHost", mock.Anything).Return(nil)
	return m
}

// MemoryStore is an in-memory config.Store for tests that only need the
// persisted values.
type MemoryStore struct {
	mu sync.Mutex

	RoleARN string
	Host    string

	RoleARNErr error
	HostErr    error
}

// SaveRoleARN stores the ARN in memory.
func (s *MemoryStore) SaveRoleARN(arn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RoleARNErr != nil {
		return s.RoleARNErr
	}
	s.RoleARN = arn
	return nil
}

// SaveClusterHost stores the host in memory.
func (s *MemoryStore) SaveClusterHost(host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.HostErr != nil {
		return s.HostErr
	}
	s.Host = host
	return nil
}

// Saved returns the values persisted so far.
func (s *MemoryStore) Saved() (roleARN, host string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.RoleARN, s.Host
}
