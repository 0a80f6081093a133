package types

import "sort"

// Deletions records rows removed locally that the remote store still holds.
// A task entry covers the task row and all of its task_data rows.
type Deletions struct {
	Tasks    map[string]bool            `json:"tasks,omitempty"`
	Days     map[string]map[string]bool `json:"days,omitempty"`
	Comments map[string]bool            `json:"comments,omitempty"`
}

func (d *Deletions) Task(key string) {
	if d.Tasks == nil {
		d.Tasks = make(map[string]bool)
	}
	d.Tasks[key] = true
	delete(d.Days, key)
}

// Day records a cleared completion; dateKey is "{year}-{month}-{day}".
func (d *Deletions) Day(taskKey, dateKey string) {
	if d.Days == nil {
		d.Days = make(map[string]map[string]bool)
	}
	if d.Days[taskKey] == nil {
		d.Days[taskKey] = make(map[string]bool)
	}
	d.Days[taskKey][dateKey] = true
}

func (d *Deletions) Comment(dateKey string) {
	if d.Comments == nil {
		d.Comments = make(map[string]bool)
	}
	d.Comments[dateKey] = true
}

func (d Deletions) Empty() bool {
	return len(d.Tasks) == 0 && len(d.Days) == 0 && len(d.Comments) == 0
}

// HasDay reports whether a remote completion must not be merged back.
func (d Deletions) HasDay(taskKey, dateKey string) bool {
	return d.Tasks[taskKey] || d.Days[taskKey][dateKey]
}

func (d Deletions) HasTask(key string) bool { return d.Tasks[key] }

func (d Deletions) HasComment(dateKey string) bool { return d.Comments[dateKey] }

// Forget drops every entry of sent, leaving ones recorded since.
func (d *Deletions) Forget(sent Deletions) {
	for k := range sent.Tasks {
		delete(d.Tasks, k)
	}
	for task, days := range sent.Days {
		for dk := range days {
			delete(d.Days[task], dk)
		}
		if len(d.Days[task]) == 0 {
			delete(d.Days, task)
		}
	}
	for k := range sent.Comments {
		delete(d.Comments, k)
	}
}

func (d Deletions) Clone() Deletions {
	var out Deletions
	for k := range d.Tasks {
		out.Task(k)
	}
	for task, days := range d.Days {
		for dk := range days {
			out.Day(task, dk)
		}
	}
	for k := range d.Comments {
		out.Comment(k)
	}
	return out
}

// TaskKeys returns the deleted task keys in sorted order.
func (d Deletions) TaskKeys() []string { return sortedSet(d.Tasks) }

func (d Deletions) CommentKeys() []string { return sortedSet(d.Comments) }

// DayKeys returns the cleared date keys of one task in sorted order.
func (d Deletions) DayKeys(taskKey string) []string { return sortedSet(d.Days[taskKey]) }

// DayTasks returns the tasks with cleared days in sorted order.
func (d Deletions) DayTasks() []string {
	keys := make([]string, 0, len(d.Days))
	for k := range d.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
