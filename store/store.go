// Package store is the local key-value persistence for the tracker. Values
// are JSON blobs addressed by a fixed set of logical names.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clementus360/daily-tracker/types"
)

// Logical names. The exact strings are part of the stored data format.
const (
	KeyData              = "tracker-data"
	KeyCustomTasks       = "tracker-custom-tasks"
	KeyDarkMode          = "tracker-dark-mode"
	KeyDefaultTasks      = "tracker-default-tasks"
	KeyComments          = "tracker-comments"
	KeyTodayNotes        = "tracker-today-notes"
	KeyLayoutSettings    = "tracker-layout-settings"
	KeyAnalyticsSettings = "tracker-analytics-settings"
	// KeySyncDeletions holds local deletions not yet applied remotely.
	KeySyncDeletions = "tracker-sync-deletions"
)

// BackupKey returns the logical name of a backup slot (1-based).
func BackupKey(slot int) string {
	return fmt.Sprintf("tracker-backup-%d", slot)
}

// Store persists JSON blobs. Writes are visible to subsequent reads in the
// same process. There is no atomicity across names.
type Store interface {
	// Get returns types.ErrNotFound when nothing is stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, value []byte) error
	Remove(ctx context.Context, name string) error
}

// ArchiveEntry describes one archived document.
type ArchiveEntry struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
}

// Archiver keeps an append-only history of full documents.
type Archiver interface {
	SaveArchive(ctx context.Context, document []byte, at time.Time) (int64, error)
	ListArchives(ctx context.Context) ([]ArchiveEntry, error)
	LoadArchive(ctx context.Context, id int64) ([]byte, error)
}

// LoadJSON decodes the value stored under name into dst. Absent values return
// types.ErrNotFound; undecodable values return an error wrapping types.ErrParse.
// Decode into a fresh value: dst may be partially written on error.
func LoadJSON(ctx context.Context, s Store, name string, dst any) error {
	raw, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", name, errors.Join(types.ErrParse, err))
	}
	return nil
}

// SaveJSON encodes v and stores it under name.
func SaveJSON(ctx context.Context, s Store, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return s.Set(ctx, name, b)
}
