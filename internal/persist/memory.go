package persist

import (
	"context"
	"sync"
)

type Memory struct {
	mu       sync.Mutex
	sessions map[string]Snapshot
}

func NewMemory() *Memory {
	return &Memory{sessions: map[string]Snapshot{}}
}

func (m *Memory) Load(_ context.Context, sessionID string) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	return s, ok, nil
}

func (m *Memory) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[snap.SessionID] = snap
	return nil
}

func (m *Memory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *Memory) Close() error { return nil }
