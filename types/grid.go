package types

// StatusDone is the only status ever stored; absence means not completed.
const StatusDone = "right"

// CompletionGrid maps taskKey -> monthKey -> day -> status. Entries are
// deleted rather than cleared so the structure stays sparse.
type CompletionGrid map[string]map[string]map[int]string

func (g CompletionGrid) IsDone(taskKey, monthKey string, day int) bool {
	return g[taskKey][monthKey][day] == StatusDone
}

// Ensure creates the (possibly empty) slot for a task. A null slot decoded
// from JSON is replaced too.
func (g CompletionGrid) Ensure(taskKey string) {
	if g[taskKey] == nil {
		g[taskKey] = make(map[string]map[int]string)
	}
}

func (g CompletionGrid) Set(taskKey, monthKey string, day int, status string) {
	g.Ensure(taskKey)
	month := g[taskKey][monthKey]
	if month == nil {
		month = make(map[int]string)
		g[taskKey][monthKey] = month
	}
	month[day] = status
}

// Clear removes a day entry and prunes the month when it becomes empty.
func (g CompletionGrid) Clear(taskKey, monthKey string, day int) {
	month, ok := g[taskKey][monthKey]
	if !ok {
		return
	}
	delete(month, day)
	if len(month) == 0 {
		delete(g[taskKey], monthKey)
	}
}

// Toggle flips completion for one day and returns the new state.
func (g CompletionGrid) Toggle(taskKey, monthKey string, day int) bool {
	if _, ok := g[taskKey][monthKey][day]; ok {
		g.Clear(taskKey, monthKey, day)
		return false
	}
	g.Set(taskKey, monthKey, day, StatusDone)
	return true
}

// DeleteTask drops every entry recorded for a task.
func (g CompletionGrid) DeleteTask(taskKey string) {
	delete(g, taskKey)
}

func (g CompletionGrid) Clone() CompletionGrid {
	out := make(CompletionGrid, len(g))
	for task, months := range g {
		m := make(map[string]map[int]string, len(months))
		for mk, days := range months {
			d := make(map[int]string, len(days))
			for day, status := range days {
				d[day] = status
			}
			m[mk] = d
		}
		out[task] = m
	}
	return out
}

// Annotations maps a date key to free text. An empty string is a stored value,
// distinct from an absent key.
type Annotations map[string]string

func (a Annotations) Clone() Annotations {
	out := make(Annotations, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
