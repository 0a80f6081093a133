package supabase

import (
	"sort"
	"strconv"

	"clementus360/daily-tracker/types"
)

// TaskRows flattens every task of the aggregate. A task is a default task
// when it belongs to the built-in mapping.
func TaskRows(agg types.Aggregate, userID string) []types.TaskRow {
	all := agg.AllTasks()
	rows := make([]types.TaskRow, 0, all.Len())
	for _, task := range all.Tasks() {
		rows = append(rows, types.TaskRow{
			UserID:    userID,
			TaskKey:   task.Key,
			Label:     task.Label,
			Color:     string(task.Color),
			IsDefault: agg.DefaultTasks.Has(task.Key),
			Category:  nullable(task.Category),
			Priority:  nullable(string(task.Priority)),
		})
	}
	return rows
}

// TaskDataRows flattens the completion grid, one row per completed day.
func TaskDataRows(grid types.CompletionGrid, userID string) []types.TaskDataRow {
	var rows []types.TaskDataRow
	for taskKey, months := range grid {
		for monthKey, days := range months {
			for day, status := range days {
				rows = append(rows, types.TaskDataRow{
					UserID:  userID,
					TaskKey: taskKey,
					DateKey: monthKey + "-" + strconv.Itoa(day),
					Status:  status,
				})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TaskKey != rows[j].TaskKey {
			return rows[i].TaskKey < rows[j].TaskKey
		}
		return rows[i].DateKey < rows[j].DateKey
	})
	return rows
}

func tasksFromRows(rows []types.TaskRow) (defaults, custom types.TaskSet) {
	for _, row := range rows {
		task := types.Task{
			Key:       row.TaskKey,
			Label:     row.Label,
			Color:     types.Color(row.Color),
			IsDefault: row.IsDefault,
		}
		if row.Category != nil {
			task.Category = *row.Category
		}
		if row.Priority != nil {
			task.Priority = types.Priority(*row.Priority)
		}
		if row.IsDefault {
			defaults.Put(task)
		} else {
			custom.Put(task)
		}
	}
	return defaults, custom
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
