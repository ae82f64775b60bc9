package credstore

import (
	"context"
	"sync"
)

// Memory is an in-memory credential slot for tests and ephemeral runs.
type Memory struct {
	mu         sync.Mutex
	credential string
}

// NewMemory creates an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

// Read implements session.CredentialStorage.
func (m *Memory) Read(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential, nil
}

// Write implements session.CredentialStorage.
func (m *Memory) Write(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	return nil
}

// Clear implements session.CredentialStorage.
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = ""
	return nil
}
