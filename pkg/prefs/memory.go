package prefs

import (
	"context"
	"sync"
)

type memValue struct {
	set  map[string]struct{}
	list []string
}

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]memValue
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{values: make(map[string]memValue)}
}

func memKey(namespace, key string) string {
	return namespace + "\x00" + key
}

func (m *Memory) PutStringSet(_ context.Context, namespace, key string, values []string) error {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[memKey(namespace, key)] = memValue{set: set}
	return nil
}

// GetStringSet iterates the underlying map, so order is unspecified.
func (m *Memory) GetStringSet(_ context.Context, namespace, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[memKey(namespace, key)]
	if !ok || v.set == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.set))
	for s := range v.set {
		out = append(out, s)
	}
	return out, nil
}

func (m *Memory) PutStringList(_ context.Context, namespace, key string, values []string) error {
	list := make([]string, len(values))
	copy(list, values)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[memKey(namespace, key)] = memValue{list: list}
	return nil
}

func (m *Memory) GetStringList(_ context.Context, namespace, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[memKey(namespace, key)]
	if !ok || v.list == nil {
		return nil, nil
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, nil
}

func (m *Memory) Close() error { return nil }
