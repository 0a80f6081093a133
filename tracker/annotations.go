package tracker

import (
	"context"

	"clementus360/daily-tracker/types"
)

// SetComment stores text for date. An empty string is kept as a value.
func (t *Tracker) SetComment(ctx context.Context, date types.Date, text string) error {
	if err := date.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.comments[date.DateKey()] = text
	t.commitLocked(ctx, CategoryComments)
	return nil
}

func (t *Tracker) ClearComment(ctx context.Context, date types.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.cur.comments[date.DateKey()]; !ok {
		return nil
	}
	delete(t.cur.comments, date.DateKey())
	t.recordDeletionLocked(ctx, func(d *types.Deletions) { d.Comment(date.DateKey()) })
	t.commitLocked(ctx, CategoryComments)
	return nil
}

func (t *Tracker) Comment(date types.Date) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	text, ok := t.cur.comments[date.DateKey()]
	return text, ok
}

func (t *Tracker) Comments() types.Annotations {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.comments.Clone()
}

// Today is the current calendar day on the tracker's clock.
func (t *Tracker) Today() types.Date {
	return types.DateOf(t.now())
}

// SetTodayNotes stores the free-text note for the current calendar day.
func (t *Tracker) SetTodayNotes(ctx context.Context, text string) {
	key := t.Today().DateKey()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur.notes[key] = text
	t.commitLocked(ctx, CategoryNotes)
}

func (t *Tracker) TodayNotes() string {
	key := t.Today().DateKey()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.notes[key]
}

func (t *Tracker) Notes() types.Annotations {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.notes.Clone()
}
