package types

// TaskItem is a task as sent over HTTP, with its key inlined.
type TaskItem struct {
	Key string `json:"key"`
	Task
}

func ItemsOf(tasks []Task) []TaskItem {
	out := make([]TaskItem, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskItem{Key: t.Key, Task: t})
	}
	return out
}

type TaskResponse struct {
	Success      bool      `json:"success"`
	Task         *TaskItem `json:"task,omitempty"`
	ErrorMessage string    `json:"error,omitempty"` // only set on failure
}

type GetTasksResponse struct {
	Success      bool       `json:"success"`
	Tasks        []TaskItem `json:"tasks"`
	Total        int        `json:"total"`
	ErrorMessage string     `json:"error,omitempty"`
}

// MessageResponse is the envelope for operations with nothing to return.
type MessageResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type ToggleResponse struct {
	Success    bool    `json:"success"`
	TaskKey    string  `json:"task_key"`
	Date       Date    `json:"date"`
	Done       bool    `json:"done"`
	Percentage float64 `json:"percentage"`
}

type DayResponse struct {
	Success    bool       `json:"success"`
	Date       Date       `json:"date"`
	Percentage float64    `json:"percentage"`
	Completed  []TaskItem `json:"completed"`
	Comment    *string    `json:"comment,omitempty"`
}

type StreakResponse struct {
	Success bool   `json:"success"`
	TaskKey string `json:"task_key"`
	AsOf    Date   `json:"as_of"`
	Streak  int    `json:"streak"`
}

type CommentsResponse struct {
	Success  bool        `json:"success"`
	Comments Annotations `json:"comments"`
}

type NotesResponse struct {
	Success bool   `json:"success"`
	DateKey string `json:"date_key"`
	Notes   string `json:"notes"`
}

type SettingsResponse struct {
	Success  bool     `json:"success"`
	Settings Settings `json:"settings"`
}

type NavigateResponse struct {
	Success bool `json:"success"`
	Year    int  `json:"year"`
	Month   int  `json:"month"`
}

type UserResponse struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
}
