package store

import (
	"context"
	"sync"
)

type memoryEntry struct {
	data     []byte
	revision int64
}

// Memory is an in-process Store. It provides the same revision semantics
// as the durable store and is used in tests and in single-instance
// deployments that run without a storage path.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, channelID string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[channelID]
	if !ok {
		return Record{}, ErrNotFound
	}

	data := make([]byte, len(e.data))
	copy(data, e.data)
	return Record{ChannelID: channelID, Data: data, Revision: e.revision}, nil
}

func (m *Memory) Put(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.entries[rec.ChannelID]
	switch {
	case rec.Revision == 0 && exists:
		return ErrRevisionMismatch
	case rec.Revision != 0 && (!exists || e.revision != rec.Revision):
		return ErrRevisionMismatch
	}

	data := make([]byte, len(rec.Data))
	copy(data, rec.Data)
	m.entries[rec.ChannelID] = memoryEntry{data: data, revision: rec.Revision + 1}
	return nil
}

func (m *Memory) Delete(_ context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, channelID)
	return nil
}

func (m *Memory) Close() error { return nil }
