package tracker

import (
	"time"

	"clementus360/daily-tracker/types"
)

// state is everything the tracker holds in memory. Restores and imports
// build a complete replacement and swap it in, so a failure leaves the
// previous state untouched.
type state struct {
	defaults types.TaskSet
	custom   types.TaskSet
	data     types.CompletionGrid
	comments types.Annotations
	notes    types.Annotations
	settings types.Settings
}

func initialState(now time.Time) state {
	s := state{
		defaults: types.DefaultTasks(),
		data:     types.CompletionGrid{},
		comments: types.Annotations{},
		notes:    types.Annotations{},
		settings: types.Settings{
			DarkMode:     true,
			Layout:       types.DefaultLayout(),
			Analytics:    types.DefaultAnalytics(),
			CurrentMonth: int(now.Month()) - 1,
			CurrentYear:  now.Year(),
		},
	}
	s.ensureSlots()
	return s
}

func (s state) clone() state {
	return state{
		defaults: s.defaults.Clone(),
		custom:   s.custom.Clone(),
		data:     s.data.Clone(),
		comments: s.comments.Clone(),
		notes:    s.notes.Clone(),
		settings: s.settings.Clone(),
	}
}

// tasks is the merged, ordered view: defaults first, then custom.
func (s state) tasks() types.TaskSet {
	return types.MergeTaskSets(s.defaults, s.custom)
}

// ensureSlots gives every known task an entry in the completion grid.
func (s state) ensureSlots() {
	for _, key := range s.tasks().Keys() {
		s.data.Ensure(key)
	}
}

func (s state) visibleTasks() []types.Task {
	var out []types.Task
	for _, t := range s.tasks().Tasks() {
		if !t.Hidden {
			out = append(out, t)
		}
	}
	return out
}

func (s state) document(now time.Time) types.Document {
	defaults := s.defaults.Clone()
	custom := s.custom.Clone()
	dark := s.settings.DarkMode
	month := s.settings.CurrentMonth
	year := s.settings.CurrentYear
	return types.Document{
		Tasks:      &types.TaskBundle{DefaultTasks: &defaults, CustomTasks: &custom},
		Data:       s.data.Clone(),
		Comments:   s.comments.Clone(),
		TodayNotes: s.notes.Clone(),
		Settings: &types.DocumentSettings{
			DarkMode:     &dark,
			CurrentMonth: &month,
			CurrentYear:  &year,
			Layout:       cloneMap(s.settings.Layout),
			Analytics:    cloneMap(s.settings.Analytics),
		},
		Timestamp: now.UnixMilli(),
	}
}

// withDocument returns a copy of s overwritten by doc. Sections the document
// leaves out keep their current values.
func (s state) withDocument(doc types.Document) state {
	next := s.clone()
	if doc.Tasks != nil {
		if doc.Tasks.DefaultTasks != nil {
			next.defaults = markDefault(doc.Tasks.DefaultTasks.Clone(), true)
		}
		if doc.Tasks.CustomTasks != nil {
			next.custom = markDefault(doc.Tasks.CustomTasks.Clone(), false)
		}
	}
	if doc.Data != nil {
		next.data = doc.Data.Clone()
	}
	if doc.Comments != nil {
		next.comments = doc.Comments.Clone()
	}
	if doc.TodayNotes != nil {
		next.notes = doc.TodayNotes.Clone()
	}
	if ds := doc.Settings; ds != nil {
		if ds.DarkMode != nil {
			next.settings.DarkMode = *ds.DarkMode
		}
		if ds.CurrentMonth != nil && *ds.CurrentMonth >= 0 && *ds.CurrentMonth <= 11 {
			next.settings.CurrentMonth = *ds.CurrentMonth
		}
		if ds.CurrentYear != nil && *ds.CurrentYear > 0 {
			next.settings.CurrentYear = *ds.CurrentYear
		}
		if ds.Layout != nil {
			next.settings.Layout = cloneMap(ds.Layout)
		}
		if ds.Analytics != nil {
			next.settings.Analytics = cloneMap(ds.Analytics)
		}
	}
	next.ensureSlots()
	return next
}

func markDefault(set types.TaskSet, isDefault bool) types.TaskSet {
	for _, t := range set.Tasks() {
		t.IsDefault = isDefault
		set.Put(t)
	}
	return set
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
