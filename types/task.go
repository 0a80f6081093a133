package types

import (
	"regexp"
	"strings"
)

// Color is one of the Tailwind background classes the UI knows how to render.
type Color string

const DefaultColor Color = "bg-teal-500"

// Palette lists every accepted task color: the built-in task colors followed
// by the colors offered for custom tasks.
var Palette = []Color{
	"bg-orange-500", "bg-purple-500", "bg-indigo-500",
	"bg-teal-500", "bg-cyan-500", "bg-emerald-500", "bg-lime-500",
	"bg-yellow-500", "bg-amber-500", "bg-rose-500", "bg-pink-500",
	"bg-violet-500", "bg-sky-500", "bg-slate-500", "bg-gray-500",
}

func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority. The empty priority is allowed.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a trackable habit. Key is derived once from the label at creation
// and is carried by the owning TaskSet, not by the JSON body.
type Task struct {
	Key       string   `json:"-"`
	Label     string   `json:"label"`
	Color     Color    `json:"color"`
	Category  string   `json:"category,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	IsDefault bool     `json:"isDefault,omitempty"`
	Hidden    bool     `json:"hidden,omitempty"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// DeriveTaskKey lower-cases the trimmed label and collapses whitespace runs
// into a single underscore. It returns ErrEmptyLabel for blank labels.
func DeriveTaskKey(label string) (string, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return "", ErrEmptyLabel
	}
	return whitespaceRun.ReplaceAllString(strings.ToLower(trimmed), "_"), nil
}

// DefaultTasks returns the built-in task set seeded on first run.
func DefaultTasks() TaskSet {
	var s TaskSet
	s.Put(Task{Key: "leetcode", Label: "LeetCode", Color: "bg-orange-500", IsDefault: true})
	s.Put(Task{Key: "pt", Label: "Physical Therapy", Color: "bg-purple-500", IsDefault: true})
	s.Put(Task{Key: "gym", Label: "Gym Workouts", Color: "bg-indigo-500", IsDefault: true})
	return s
}
