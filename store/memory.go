package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"clementus360/daily-tracker/types"
)

// Memory is an in-process Store and Archiver.
type Memory struct {
	mu       sync.RWMutex
	values   map[string][]byte
	archives []archived
}

type archived struct {
	entry    ArchiveEntry
	document []byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, types.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
	return nil
}

func (m *Memory) SaveArchive(_ context.Context, document []byte, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.archives) + 1)
	m.archives = append(m.archives, archived{
		entry:    ArchiveEntry{ID: id, CreatedAt: at, Size: len(document)},
		document: append([]byte(nil), document...),
	})
	return id, nil
}

func (m *Memory) ListArchives(_ context.Context) ([]ArchiveEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ArchiveEntry, 0, len(m.archives))
	for _, a := range m.archives {
		out = append(out, a.entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) LoadArchive(_ context.Context, id int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.archives {
		if a.entry.ID == id {
			return append([]byte(nil), a.document...), nil
		}
	}
	return nil, fmt.Errorf("archive %d: %w", id, types.ErrNotFound)
}
