package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const ExportVersion = "1.0"

// ExportTimeLayout matches ISO-8601 UTC with millisecond precision.
const ExportTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type TaskBundle struct {
	DefaultTasks *TaskSet `json:"defaultTasks,omitempty"`
	CustomTasks  *TaskSet `json:"customTasks,omitempty"`
}

// DocumentSettings uses pointers so a missing field can fall back to the
// current in-memory value on import.
type DocumentSettings struct {
	DarkMode     *bool          `json:"darkMode,omitempty"`
	CurrentMonth *int           `json:"currentMonth,omitempty"`
	CurrentYear  *int           `json:"currentYear,omitempty"`
	Layout       map[string]any `json:"layoutSettings,omitempty"`
	Analytics    map[string]any `json:"analyticsSettings,omitempty"`
}

// Document is the on-disk shape shared by backup slots, archives and export
// files. Backups carry Timestamp; exports carry ExportDate and Version.
type Document struct {
	Tasks      *TaskBundle       `json:"tasks"`
	Data       CompletionGrid    `json:"data"`
	Comments   Annotations       `json:"comments"`
	TodayNotes Annotations       `json:"todayNotes"`
	Settings   *DocumentSettings `json:"settings,omitempty"`
	Timestamp  int64             `json:"timestamp,omitempty"`
	ExportDate string            `json:"exportDate,omitempty"`
	Version    string            `json:"version,omitempty"`
}

var requiredSections = []string{"tasks", "data", "comments"}

// ParseDocument decodes an import or backup document. Malformed JSON wraps
// ErrParse; a document missing tasks, data or comments wraps ErrValidation.
func ParseDocument(b []byte) (Document, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(b, &sections); err != nil {
		return Document{}, errors.Join(ErrParse, err)
	}
	for _, name := range requiredSections {
		raw, ok := sections[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return Document{}, fmt.Errorf("invalid backup file format: missing %q: %w", name, ErrValidation)
		}
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, errors.Join(ErrParse, err)
	}
	return doc, nil
}

func (d Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
