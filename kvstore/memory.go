package kvstore

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Memory keeps values as raw JSON in a map. Used by tests and as a dev
// backend; the JSON round-trip keeps callers from sharing memory with the
// store, same as the durable backends.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string, out any) bool {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("kvstore: memory get %s: %v", key, err)
		return false
	}
	return true
}

func (m *Memory) Set(ctx context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("kvstore: memory set %s: %v", key, err)
		return false
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return true
}
