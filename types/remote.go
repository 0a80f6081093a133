package types

import "encoding/json"

// Remote table names.
const (
	TableTasks    = "tasks"
	TableTaskData = "task_data"
	TableSettings = "user_settings"
	TableComments = "comments"
	TableNotes    = "notes"
)

// Upsert conflict targets, always user_id plus the natural key.
const (
	ConflictTasks    = "user_id,task_key"
	ConflictTaskData = "user_id,task_key,date_key"
	ConflictSettings = "user_id,setting_key"
	ConflictDateKey  = "user_id,date_key"
)

type TaskRow struct {
	UserID    string  `json:"user_id"`
	TaskKey   string  `json:"task_key"`
	Label     string  `json:"label"`
	Color     string  `json:"color"`
	IsDefault bool    `json:"is_default"`
	Category  *string `json:"category"`
	Priority  *string `json:"priority"`
}

type TaskDataRow struct {
	UserID  string `json:"user_id"`
	TaskKey string `json:"task_key"`
	DateKey string `json:"date_key"`
	Status  string `json:"status"`
}

type SettingRow struct {
	UserID       string          `json:"user_id"`
	SettingKey   string          `json:"setting_key"`
	SettingValue json.RawMessage `json:"setting_value"`
}

type CommentRow struct {
	UserID  string `json:"user_id"`
	DateKey string `json:"date_key"`
	Comment string `json:"comment"`
}

type NoteRow struct {
	UserID  string `json:"user_id"`
	DateKey string `json:"date_key"`
	Note    string `json:"note"`
}
