// Package session holds the bearer credential of the current session.
package session

import "sync"

// Store keeps at most one token. Get reports false until a token is set.
type Store interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

// Memory is a Store living for the lifetime of the process.
type Memory struct {
	mu    sync.RWMutex
	token string
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear() error { return m.Set("") }
