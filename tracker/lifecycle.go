package tracker

import "errors"

// Phase is the load state of one entity category.
type Phase int

const (
	Uninitialized Phase = iota
	Loading
	Hydrated
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Hydrated:
		return "hydrated"
	}
	return "unknown"
}

// Category is an independently persisted slice of state.
type Category string

const (
	CategoryTasks    Category = "tasks"
	CategoryData     Category = "data"
	CategoryComments Category = "comments"
	CategoryNotes    Category = "notes"
	CategorySettings Category = "settings"
)

var allCategories = []Category{
	CategoryTasks, CategoryData, CategoryComments, CategoryNotes, CategorySettings,
}

var ErrLoaded = errors.New("tracker already loaded")

// lifecycle guards writes: nothing reaches the Local Store or the backup
// slots for a category until that category is Hydrated.
type lifecycle map[Category]Phase

func newLifecycle() lifecycle {
	l := make(lifecycle, len(allCategories))
	for _, c := range allCategories {
		l[c] = Uninitialized
	}
	return l
}

func (l lifecycle) begin(c Category) error {
	if l[c] != Uninitialized {
		return ErrLoaded
	}
	l[c] = Loading
	return nil
}

func (l lifecycle) finish(c Category) {
	if l[c] == Loading {
		l[c] = Hydrated
	}
}

func (l lifecycle) hydrated(cs ...Category) bool {
	for _, c := range cs {
		if l[c] != Hydrated {
			return false
		}
	}
	return true
}

// overall is the least advanced phase across categories.
func (l lifecycle) overall() Phase {
	p := Hydrated
	for _, c := range allCategories {
		if l[c] < p {
			p = l[c]
		}
	}
	return p
}
