package types

import "time"

// Aggregate is the full combined state at one instant: the unit pushed to and
// pulled from the remote store.
type Aggregate struct {
	DefaultTasks TaskSet
	CustomTasks  TaskSet
	Data         CompletionGrid
	Comments     Annotations
	Notes        Annotations
	Settings     SettingValues
	// Deleted lists local deletions to apply remotely. Pulls leave it empty.
	Deleted   Deletions
	Timestamp time.Time
}

// AllTasks returns default tasks followed by custom tasks.
func (a Aggregate) AllTasks() TaskSet {
	return MergeTaskSets(a.DefaultTasks, a.CustomTasks)
}
