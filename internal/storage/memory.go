package storage

import (
	"context"
	"sync"
)

// Memory 为进程内存储，用于测试和临时运行。
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory 创建空的内存存储。
func NewMemory() *Memory {
	return &Memory{records: map[string][]byte{}}
}

// Load 返回值的副本。
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	value, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

// Save 在写锁内写入全部条目。
func (m *Memory) Save(_ context.Context, entries ...Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}

	m.mu.Lock()
	for _, entry := range entries {
		m.records[entry.Key] = cloneBytes(entry.Value)
	}
	m.mu.Unlock()
	return nil
}

// Close 无需释放资源。
func (m *Memory) Close() error {
	return nil
}

func cloneBytes(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
