// Package backup keeps the last few committed aggregate states in rotating
// Local Store slots. Slot 1 is the newest.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/types"
)

// Slots is the number of rotating snapshots kept.
const Slots = 3

// Slot describes what a backup slot currently holds.
type Slot struct {
	Number    int        `json:"slot"`
	Present   bool       `json:"present"`
	Corrupt   bool       `json:"corrupt,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type Manager struct {
	store store.Store
	slots int
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s, slots: Slots}
}

// Rotate records doc as the newest snapshot. Every occupied slot moves one
// place down and the oldest falls off. All pre-shift values are read before
// any slot is written, so each slot receives its predecessor's old content.
func (m *Manager) Rotate(ctx context.Context, doc types.Document) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	previous := make([][]byte, m.slots+1)
	for slot := 1; slot < m.slots; slot++ {
		v, err := m.store.Get(ctx, store.BackupKey(slot))
		if errors.Is(err, types.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading backup %d: %w", slot, err)
		}
		previous[slot] = v
	}

	for slot := m.slots; slot > 1; slot-- {
		if previous[slot-1] == nil {
			continue
		}
		if err := m.store.Set(ctx, store.BackupKey(slot), previous[slot-1]); err != nil {
			return fmt.Errorf("shifting backup %d: %w", slot-1, err)
		}
	}

	if err := m.store.Set(ctx, store.BackupKey(1), encoded); err != nil {
		return fmt.Errorf("writing backup 1: %w", err)
	}
	return nil
}

// Load reads and decodes one slot. It fails with types.ErrInvalidSlot,
// types.ErrNotFound for an empty slot, or types.ErrParse for a corrupted one.
func (m *Manager) Load(ctx context.Context, slot int) (types.Document, error) {
	if slot < 1 || slot > m.slots {
		return types.Document{}, fmt.Errorf("slot %d: %w", slot, types.ErrInvalidSlot)
	}
	raw, err := m.store.Get(ctx, store.BackupKey(slot))
	if err != nil {
		return types.Document{}, fmt.Errorf("backup %d: %w", slot, err)
	}
	doc, err := types.ParseDocument(raw)
	if errors.Is(err, types.ErrValidation) {
		return types.Document{}, fmt.Errorf("backup %d: %w", slot, errors.Join(types.ErrParse, err))
	}
	if err != nil {
		return types.Document{}, fmt.Errorf("backup %d: %w", slot, err)
	}
	return doc, nil
}

// List reports the state of every slot, newest first.
func (m *Manager) List(ctx context.Context) ([]Slot, error) {
	out := make([]Slot, 0, m.slots)
	for n := 1; n <= m.slots; n++ {
		s := Slot{Number: n}
		doc, err := m.Load(ctx, n)
		switch {
		case err == nil:
			s.Present = true
			if doc.Timestamp > 0 {
				ts := time.UnixMilli(doc.Timestamp)
				s.Timestamp = &ts
			}
		case errors.Is(err, types.ErrNotFound):
		case errors.Is(err, types.ErrParse):
			s.Present = true
			s.Corrupt = true
		default:
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
