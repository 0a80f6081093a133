package tracker

import (
	"context"
	"fmt"
	"strings"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/types"

	"github.com/sirupsen/logrus"
)

type NewTask struct {
	Label    string         `json:"label"`
	Color    types.Color    `json:"color"`
	Category string         `json:"category"`
	Priority types.Priority `json:"priority"`
	Notes    string         `json:"notes"`
}

// TaskUpdate changes only the fields that are set. The key never changes.
type TaskUpdate struct {
	Label    *string         `json:"label"`
	Color    *types.Color    `json:"color"`
	Category *string         `json:"category"`
	Priority *types.Priority `json:"priority"`
	Notes    *string         `json:"notes"`
}

// Tasks returns every task in display order, hidden ones included.
func (t *Tracker) Tasks() types.TaskSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cur.tasks()
}

func (t *Tracker) Task(key string) (types.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.cur.tasks().Get(key)
	if !ok {
		return types.Task{}, fmt.Errorf("task %q: %w", key, types.ErrTaskNotFound)
	}
	return task, nil
}

func (t *Tracker) AddTask(ctx context.Context, in NewTask) (types.Task, error) {
	key, err := types.DeriveTaskKey(in.Label)
	if err != nil {
		return types.Task{}, err
	}
	if in.Color == "" {
		in.Color = types.DefaultColor
	}
	if err := validateAttributes(in.Color, in.Priority); err != nil {
		return types.Task{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cur.tasks().Has(key) {
		return types.Task{}, fmt.Errorf("task %q: %w", key, types.ErrDuplicateKey)
	}
	task := types.Task{
		Key:      key,
		Label:    strings.TrimSpace(in.Label),
		Color:    in.Color,
		Category: in.Category,
		Priority: in.Priority,
		Notes:    in.Notes,
	}
	t.cur.custom.Put(task)
	t.cur.data[key] = make(map[string]map[int]string)
	t.commitLocked(ctx, CategoryTasks, CategoryData)

	config.Logger.WithFields(logrus.Fields{"task": key}).Info("Task added")
	return task, nil
}

func (t *Tracker) UpdateTask(ctx context.Context, key string, upd TaskUpdate) (types.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, set, err := t.lookupLocked(key)
	if err != nil {
		return types.Task{}, err
	}
	if upd.Label != nil {
		label := strings.TrimSpace(*upd.Label)
		if label == "" {
			return types.Task{}, types.ErrEmptyLabel
		}
		task.Label = label
	}
	if upd.Color != nil {
		task.Color = *upd.Color
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	if err := validateAttributes(task.Color, task.Priority); err != nil {
		return types.Task{}, err
	}
	if upd.Category != nil {
		task.Category = *upd.Category
	}
	if upd.Notes != nil {
		task.Notes = *upd.Notes
	}
	set.Put(task)
	t.commitLocked(ctx, CategoryTasks)
	return task, nil
}

// RemoveTask deletes a custom task and every completion recorded for it.
// Built-in tasks can only be hidden.
func (t *Tracker) RemoveTask(ctx context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cur.custom.Has(key) {
		if t.cur.defaults.Has(key) {
			return fmt.Errorf("task %q: %w", key, types.ErrBuiltinTask)
		}
		return fmt.Errorf("task %q: %w", key, types.ErrTaskNotFound)
	}
	t.cur.custom.Delete(key)
	t.cur.data.DeleteTask(key)
	t.recordDeletionLocked(ctx, func(d *types.Deletions) { d.Task(key) })
	t.commitLocked(ctx, CategoryTasks, CategoryData)

	config.Logger.WithFields(logrus.Fields{"task": key}).Info("Task removed")
	return nil
}

// SetTaskHidden hides a task from the day view and analytics without losing
// its history.
func (t *Tracker) SetTaskHidden(ctx context.Context, key string, hidden bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, set, err := t.lookupLocked(key)
	if err != nil {
		return err
	}
	if task.Hidden == hidden {
		return nil
	}
	task.Hidden = hidden
	set.Put(task)
	t.commitLocked(ctx, CategoryTasks)
	return nil
}

// lookupLocked finds key and the set that owns it.
func (t *Tracker) lookupLocked(key string) (types.Task, *types.TaskSet, error) {
	if task, ok := t.cur.custom.Get(key); ok {
		return task, &t.cur.custom, nil
	}
	if task, ok := t.cur.defaults.Get(key); ok {
		return task, &t.cur.defaults, nil
	}
	return types.Task{}, nil, fmt.Errorf("task %q: %w", key, types.ErrTaskNotFound)
}

func validateAttributes(c types.Color, p types.Priority) error {
	if !c.Valid() {
		return fmt.Errorf("color %q: %w", c, types.ErrInvalidColor)
	}
	if !p.Valid() {
		return fmt.Errorf("priority %q: %w", p, types.ErrInvalidPriority)
	}
	return nil
}
