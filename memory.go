package solin

import (
	"errors"
	"io/fs"
)

const memoryDoc = "memory"

// Memory is the trivial key-value "remember/forget" store.
type Memory struct {
	store Store
	facts map[string]string
}

// OpenMemory loads the memory document; missing means empty.
func OpenMemory(store Store) (*Memory, error) {
	m := &Memory{store: store, facts: make(map[string]string)}
	err := store.Load(memoryDoc, &m.facts)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return m, nil
}

// Remember stores a fact under a key, replacing any previous value.
func (m *Memory) Remember(key, value string) error {
	m.facts[key] = value
	return m.store.Save(memoryDoc, m.facts)
}

// Recall returns the fact stored under a key.
func (m *Memory) Recall(key string) (string, bool) {
	value, ok := m.facts[key]
	return value, ok
}

// Forget removes a key. It reports whether the key was present.
func (m *Memory) Forget(key string) (bool, error) {
	if _, ok := m.facts[key]; !ok {
		return false, nil
	}
	delete(m.facts, key)
	return true, m.store.Save(memoryDoc, m.facts)
}
