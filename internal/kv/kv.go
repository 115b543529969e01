package kv

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Store is a flat key-value store. Values are opaque blobs replaced wholesale.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// LoadJSON decodes key into v. It reports false when the key is missing,
// unreadable or corrupt, leaving v untouched so callers keep their defaults.
func LoadJSON(s Store, key string, v any) bool {
	raw, ok, err := s.Get(key)
	if err != nil {
		log.Printf("[Store] Get %s error: %v\n", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[Store] Decode %s error: %v\n", key, err)
		return false
	}
	return true
}

// SaveJSON encodes v under key. Failures are logged and swallowed.
func SaveJSON(s Store, key string, v any) {
	if err := PutJSON(s, key, v); err != nil {
		log.Printf("[Store] %v\n", err)
	}
}

func PutJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
