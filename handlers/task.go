package handlers

import (
	"net/http"
	"strconv"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/tracker"
	"clementus360/daily-tracker/types"
)

func (a *API) GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks := a.tracker.Tasks().Tasks()
	if r.URL.Query().Get("visible") == "true" {
		visible := tasks[:0]
		for _, t := range tasks {
			if !t.Hidden {
				visible = append(visible, t)
			}
		}
		tasks = visible
	}
	writeJSON(w, http.StatusOK, types.GetTasksResponse{
		Success: true,
		Tasks:   types.ItemsOf(tasks),
		Total:   len(tasks),
	})
}

// get a single task by key
func (a *API) GetSingleTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, err := a.tracker.Task(r.URL.Query().Get("key"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.TaskResponse{Success: true, Task: &types.TaskItem{Key: task.Key, Task: task}})
}

func (a *API) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var in tracker.NewTask
	if err := decodeBody(r, &in); err != nil {
		writeFailure(w, err)
		return
	}

	task, err := a.tracker.AddTask(r.Context(), in)
	if err != nil {
		config.Logger.WithError(err).Debug("Task rejected")
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.TaskResponse{
		Success: true,
		Task:    &types.TaskItem{Key: task.Key, Task: task},
	})
}

func (a *API) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, "Missing task key", http.StatusBadRequest)
		return
	}

	var upd tracker.TaskUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeFailure(w, err)
		return
	}

	task, err := a.tracker.UpdateTask(r.Context(), key, upd)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.TaskResponse{
		Success: true,
		Task:    &types.TaskItem{Key: task.Key, Task: task},
	})
}

func (a *API) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, "Missing task key", http.StatusBadRequest)
		return
	}

	if err := a.tracker.RemoveTask(r.Context(), key); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.MessageResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (a *API) HideTaskHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		writeError(w, "Missing task key", http.StatusBadRequest)
		return
	}
	hidden := true
	if raw := q.Get("hidden"); raw != "" {
		var err error
		if hidden, err = strconv.ParseBool(raw); err != nil {
			writeError(w, "Invalid hidden value", http.StatusBadRequest)
			return
		}
	}

	if err := a.tracker.SetTaskHidden(r.Context(), key, hidden); err != nil {
		writeFailure(w, err)
		return
	}
	task, err := a.tracker.Task(key)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.TaskResponse{Success: true, Task: &types.TaskItem{Key: task.Key, Task: task}})
}
