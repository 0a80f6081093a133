package supabase

import (
	"context"
	"encoding/json"
	"testing"

	"clementus360/daily-tracker/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "6f9619ff-8b86-d011-b42d-00c04fc964ff"

func sampleAggregate() types.Aggregate {
	custom := types.TaskSet{}
	custom.Put(types.Task{Key: "read", Label: "Read", Color: "bg-sky-500", Category: "mind", Priority: types.PriorityHigh})

	data := types.CompletionGrid{}
	data.Set("leetcode", "2024-11", 31, types.StatusDone)
	data.Set("leetcode", "2024-0", 2, types.StatusDone)
	data.Set("read", "2024-11", 5, types.StatusDone)
	data.Ensure("gym")

	return types.Aggregate{
		DefaultTasks: types.DefaultTasks(),
		CustomTasks:  custom,
		Data:         data,
		Comments:     types.Annotations{"2024-11-31": "last day", "2024-0-2": ""},
		Notes:        types.Annotations{"2024-11-31": "scratch"},
		Settings: types.SettingValues{
			types.SettingDarkMode: json.RawMessage(`false`),
			types.SettingLayout:   json.RawMessage(`{"viewMode":"month"}`),
		},
	}
}

func TestTaskRows_MarksDefaults(t *testing.T) {
	rows := TaskRows(sampleAggregate(), userID)
	require.Len(t, rows, 4)

	assert.Equal(t, "leetcode", rows[0].TaskKey)
	assert.True(t, rows[0].IsDefault)
	assert.Nil(t, rows[0].Category)

	read := rows[3]
	assert.Equal(t, "read", read.TaskKey)
	assert.False(t, read.IsDefault)
	require.NotNil(t, read.Category)
	assert.Equal(t, "mind", *read.Category)
	require.NotNil(t, read.Priority)
	assert.Equal(t, "high", *read.Priority)
}

func TestTaskDataRows_ComposesDateKeys(t *testing.T) {
	rows := TaskDataRows(sampleAggregate().Data, userID)
	require.Len(t, rows, 3)
	assert.Equal(t, types.TaskDataRow{UserID: userID, TaskKey: "leetcode", DateKey: "2024-0-2", Status: "right"}, rows[0])
	assert.Equal(t, "2024-11-31", rows[1].DateKey)
	assert.Equal(t, "read", rows[2].TaskKey)
}

func TestPushThenPull_RebuildsNestedShapes(t *testing.T) {
	ctx := context.Background()
	tables := newFakeTables()
	s := NewSyncer(tables)
	agg := sampleAggregate()

	require.NoError(t, s.Push(ctx, agg, userID))

	got, err := s.Pull(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, []string{"leetcode", "pt", "gym"}, got.DefaultTasks.Keys())
	read, ok := got.CustomTasks.Get("read")
	require.True(t, ok)
	assert.Equal(t, types.PriorityHigh, read.Priority)

	assert.True(t, got.Data.IsDone("leetcode", "2024-11", 31))
	assert.True(t, got.Data.IsDone("leetcode", "2024-0", 2))
	assert.True(t, got.Data.IsDone("read", "2024-11", 5))
	assert.Contains(t, got.Data, "pt")

	assert.Equal(t, agg.Comments, got.Comments)
	assert.Equal(t, agg.Notes, got.Notes)
	assert.JSONEq(t, `false`, string(got.Settings[types.SettingDarkMode]))
	assert.JSONEq(t, `{"viewMode":"month"}`, string(got.Settings[types.SettingLayout]))
}

func TestPush_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	tables := newFakeTables()
	s := NewSyncer(tables)

	require.NoError(t, s.Push(ctx, sampleAggregate(), userID))
	require.NoError(t, s.Push(ctx, sampleAggregate(), userID))

	assert.Equal(t, 4, tables.count(types.TableTasks))
	assert.Equal(t, 3, tables.count(types.TableTaskData))
	assert.Equal(t, 2, tables.count(types.TableComments))
}

func TestPush_SkipsEmptyCategories(t *testing.T) {
	tables := newFakeTables()
	agg := types.Aggregate{DefaultTasks: types.DefaultTasks()}

	require.NoError(t, NewSyncer(tables).Push(context.Background(), agg, userID))

	assert.Equal(t, 1, tables.calls[types.TableTasks])
	assert.Zero(t, tables.calls[types.TableTaskData])
	assert.Zero(t, tables.calls[types.TableComments])
}

func TestPush_PartialFailureKeepsSucceededCategories(t *testing.T) {
	tables := newFakeTables()
	tables.fail(types.TableComments)

	err := NewSyncer(tables).Push(context.Background(), sampleAggregate(), userID)

	assert.ErrorIs(t, err, types.ErrRemote)
	assert.Contains(t, err.Error(), "comments unavailable")
	assert.Equal(t, 4, tables.count(types.TableTasks))
	assert.Equal(t, 3, tables.count(types.TableTaskData))
}

func TestPush_RequiresUser(t *testing.T) {
	err := NewSyncer(newFakeTables()).Push(context.Background(), sampleAggregate(), "")
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestPull_FailureIsRemoteError(t *testing.T) {
	tables := newFakeTables()
	tables.fail(types.TableNotes)

	_, err := NewSyncer(tables).Pull(context.Background(), userID)
	assert.ErrorIs(t, err, types.ErrRemote)
}

func TestPull_OnlyReturnsOwnRowsAndSkipsMalformedKeys(t *testing.T) {
	tables := newFakeTables()
	tables.seed(types.TableTaskData,
		map[string]any{"user_id": userID, "task_key": "gym", "date_key": "2025-3-14", "status": "right"},
		map[string]any{"user_id": userID, "task_key": "gym", "date_key": "bogus", "status": "right"},
		map[string]any{"user_id": "someone-else", "task_key": "gym", "date_key": "2025-3-15", "status": "right"},
	)

	got, err := NewSyncer(tables).Pull(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, types.CompletionGrid{"gym": {"2025-3": {14: "right"}}}, got.Data)
}

func TestPush_AppliesDeletionsBeforeUpserts(t *testing.T) {
	ctx := context.Background()
	tables := newFakeTables()
	s := NewSyncer(tables)
	require.NoError(t, s.Push(ctx, sampleAggregate(), userID))
	tables.seed(types.TableComments,
		map[string]any{"user_id": "someone-else", "date_key": "2024-0-2", "comment": "theirs"})

	agg := sampleAggregate()
	agg.CustomTasks.Delete("read")
	agg.Data.DeleteTask("read")
	agg.Data.Clear("leetcode", "2024-11", 31)
	delete(agg.Comments, "2024-0-2")
	agg.Deleted.Task("read")
	agg.Deleted.Day("leetcode", "2024-11-31")
	agg.Deleted.Comment("2024-0-2")
	require.NoError(t, s.Push(ctx, agg, userID))

	got, err := s.Pull(ctx, userID)
	require.NoError(t, err)
	assert.False(t, got.CustomTasks.Has("read"))
	assert.NotContains(t, got.Data, "read")
	assert.False(t, got.Data.IsDone("leetcode", "2024-11", 31))
	assert.True(t, got.Data.IsDone("leetcode", "2024-0", 2))
	assert.Equal(t, types.Annotations{"2024-11-31": "last day"}, got.Comments)
	assert.Equal(t, 2, tables.count(types.TableComments), "other users' rows stay")
}

func TestPush_NoDeletionsIssuesNoDeletes(t *testing.T) {
	tables := newFakeTables()
	require.NoError(t, NewSyncer(tables).Push(context.Background(), sampleAggregate(), userID))
	assert.Empty(t, tables.deletes)
}

func TestPush_DeleteFailureStillUpserts(t *testing.T) {
	tables := newFakeTables()
	tables.fail(types.TableComments)
	agg := sampleAggregate()
	agg.Deleted.Comment("2024-5-1")

	err := NewSyncer(tables).Push(context.Background(), agg, userID)

	assert.ErrorIs(t, err, types.ErrRemote)
	assert.Equal(t, 1, tables.deletes[types.TableComments])
	assert.Equal(t, 4, tables.count(types.TableTasks))
}
