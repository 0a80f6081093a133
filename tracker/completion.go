package tracker

import (
	"context"
	"fmt"

	"clementus360/daily-tracker/types"
)

// Toggle flips completion of taskKey on date and returns the new state.
func (t *Tracker) Toggle(ctx context.Context, taskKey string, date types.Date) (bool, error) {
	if err := date.Validate(); err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cur.tasks().Has(taskKey) {
		return false, fmt.Errorf("task %q: %w", taskKey, types.ErrTaskNotFound)
	}
	done := t.cur.data.Toggle(taskKey, date.MonthKey(), date.Day)
	if !done {
		t.recordDeletionLocked(ctx, func(d *types.Deletions) { d.Day(taskKey, date.DateKey()) })
	}
	t.commitLocked(ctx, CategoryData)
	return done, nil
}

// ToggleDay flips completion for a day of the month currently in view.
func (t *Tracker) ToggleDay(ctx context.Context, taskKey string, day int) (bool, error) {
	year, month := t.ViewMonth()
	return t.Toggle(ctx, taskKey, types.Date{Year: year, Month: month, Day: day})
}

func (t *Tracker) IsDone(taskKey string, date types.Date) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.data.IsDone(taskKey, date.MonthKey(), date.Day)
}

// Grid returns a copy of the whole completion grid.
func (t *Tracker) Grid() types.CompletionGrid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.data.Clone()
}
