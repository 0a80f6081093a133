package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Syncer translates between the nested local shapes and remote rows and runs
// the bulk upserts and selects for one user.
type Syncer struct {
	tables TableStore
	now    func() time.Time
}

func NewSyncer(tables TableStore) *Syncer {
	return &Syncer{tables: tables, now: time.Now}
}

type batch struct {
	table      string
	onConflict string
	rows       any
	size       int
}

type removal struct {
	table  string
	match  map[string]string
	column string
	values []string
}

// Push applies agg.Deleted and then upserts every category of agg.
// Categories run concurrently and an empty category is skipped. Any failure
// is reported as a whole, but work that succeeded stays written.
func (s *Syncer) Push(ctx context.Context, agg types.Aggregate, userID string) error {
	if userID == "" {
		return fmt.Errorf("push without user: %w", types.ErrNotAuthenticated)
	}

	// Deletes go first so a task removed and re-added keeps its new rows.
	removeErr := s.remove(ctx, agg.Deleted, userID)

	tasks := TaskRows(agg, userID)
	data := TaskDataRows(agg.Data, userID)
	settings := SettingRows(agg.Settings, userID)
	comments := CommentRows(agg.Comments, userID)
	notes := NoteRows(agg.Notes, userID)

	batches := []batch{
		{types.TableTasks, types.ConflictTasks, tasks, len(tasks)},
		{types.TableTaskData, types.ConflictTaskData, data, len(data)},
		{types.TableSettings, types.ConflictSettings, settings, len(settings)},
		{types.TableComments, types.ConflictDateKey, comments, len(comments)},
		{types.TableNotes, types.ConflictDateKey, notes, len(notes)},
	}

	var g errgroup.Group
	errs := make([]error, len(batches))
	for i, b := range batches {
		if b.size == 0 {
			continue
		}
		g.Go(func() error {
			if err := s.tables.Upsert(ctx, b.table, b.rows, b.onConflict); err != nil {
				config.Logger.WithFields(logrus.Fields{
					"table":   b.table,
					"user_id": userID,
					"rows":    b.size,
				}).Warn("Error syncing category: ", err)
				errs[i] = fmt.Errorf("syncing %s: %w", b.table, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(append(errs, removeErr)...); err != nil {
		return errors.Join(types.ErrRemote, err)
	}
	return nil
}

func (s *Syncer) remove(ctx context.Context, deleted types.Deletions, userID string) error {
	if deleted.Empty() {
		return nil
	}
	tasks := deleted.TaskKeys()
	removals := []removal{
		{types.TableTasks, nil, "task_key", tasks},
		{types.TableTaskData, nil, "task_key", tasks},
		{types.TableComments, nil, "date_key", deleted.CommentKeys()},
	}
	for _, task := range deleted.DayTasks() {
		removals = append(removals, removal{
			types.TableTaskData, map[string]string{"task_key": task}, "date_key", deleted.DayKeys(task),
		})
	}

	var g errgroup.Group
	errs := make([]error, len(removals))
	for i, r := range removals {
		if len(r.values) == 0 {
			continue
		}
		g.Go(func() error {
			if err := s.tables.Delete(ctx, r.table, userID, r.match, r.column, r.values); err != nil {
				config.Logger.WithFields(logrus.Fields{
					"table":   r.table,
					"user_id": userID,
					"rows":    len(r.values),
				}).Warn("Error deleting rows: ", err)
				errs[i] = fmt.Errorf("deleting from %s: %w", r.table, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Pull loads every category for userID and rebuilds the nested local shapes.
func (s *Syncer) Pull(ctx context.Context, userID string) (types.Aggregate, error) {
	if userID == "" {
		return types.Aggregate{}, fmt.Errorf("pull without user: %w", types.ErrNotAuthenticated)
	}

	var (
		taskRows    []types.TaskRow
		dataRows    []types.TaskDataRow
		settingRows []types.SettingRow
		commentRows []types.CommentRow
		noteRows    []types.NoteRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.selectInto(gctx, types.TableTasks, userID, &taskRows) })
	g.Go(func() error { return s.selectInto(gctx, types.TableTaskData, userID, &dataRows) })
	g.Go(func() error { return s.selectInto(gctx, types.TableSettings, userID, &settingRows) })
	g.Go(func() error { return s.selectInto(gctx, types.TableComments, userID, &commentRows) })
	g.Go(func() error { return s.selectInto(gctx, types.TableNotes, userID, &noteRows) })
	if err := g.Wait(); err != nil {
		return types.Aggregate{}, errors.Join(types.ErrRemote, err)
	}

	agg := types.Aggregate{
		Data:      gridFromRows(dataRows),
		Comments:  types.Annotations{},
		Notes:     types.Annotations{},
		Settings:  types.SettingValues{},
		Timestamp: s.now(),
	}
	agg.DefaultTasks, agg.CustomTasks = tasksFromRows(taskRows)
	for _, key := range agg.AllTasks().Keys() {
		agg.Data.Ensure(key)
	}
	for _, row := range settingRows {
		agg.Settings[row.SettingKey] = row.SettingValue
	}
	for _, row := range commentRows {
		agg.Comments[row.DateKey] = row.Comment
	}
	for _, row := range noteRows {
		agg.Notes[row.DateKey] = row.Note
	}
	return agg, nil
}

func (s *Syncer) selectInto(ctx context.Context, table, userID string, dst any) error {
	resp, err := s.tables.SelectByUser(ctx, table, userID)
	if err != nil {
		return fmt.Errorf("loading %s: %w", table, err)
	}
	if err := json.Unmarshal(resp, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", table, err)
	}
	return nil
}

// gridFromRows regroups task_data rows. The date key's trailing segment is
// the day; the rest, itself "{year}-{month}", is the month key.
func gridFromRows(rows []types.TaskDataRow) types.CompletionGrid {
	grid := types.CompletionGrid{}
	for _, row := range rows {
		if row.Status == "" {
			continue
		}
		monthKey, day, err := types.SplitDateKey(row.DateKey)
		if err != nil {
			config.Logger.WithFields(logrus.Fields{
				"table":    types.TableTaskData,
				"task_key": row.TaskKey,
			}).Warn("Skipping malformed row: ", err)
			continue
		}
		grid.Set(row.TaskKey, monthKey, day, row.Status)
	}
	return grid
}

func SettingRows(values types.SettingValues, userID string) []types.SettingRow {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]types.SettingRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, types.SettingRow{UserID: userID, SettingKey: k, SettingValue: values[k]})
	}
	return rows
}

func CommentRows(comments types.Annotations, userID string) []types.CommentRow {
	rows := make([]types.CommentRow, 0, len(comments))
	for _, k := range sortedKeys(comments) {
		rows = append(rows, types.CommentRow{UserID: userID, DateKey: k, Comment: comments[k]})
	}
	return rows
}

func NoteRows(notes types.Annotations, userID string) []types.NoteRow {
	rows := make([]types.NoteRow, 0, len(notes))
	for _, k := range sortedKeys(notes) {
		rows = append(rows, types.NoteRow{UserID: userID, DateKey: k, Note: notes[k]})
	}
	return rows
}

func sortedKeys(a types.Annotations) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
