package store

import "sync"

// Memory is an in-process BlobStore, used for dry runs and tests.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]string)}
}

func (m *Memory) Ping() error  { return nil }
func (m *Memory) Close() error { return nil }

func (m *Memory) GetBlob(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.blobs[name], nil
}

func (m *Memory) SetBlob(name, value string) error {
	m.mu.Lock()
	m.blobs[name] = value
	m.mu.Unlock()

	return nil
}
