package routes

import (
	"net/http"

	"clementus360/daily-tracker/handlers"
)

// RegisterTaskRoutes registers all task-related routes
func RegisterTaskRoutes(mux *http.ServeMux, api *handlers.API) {
	mux.HandleFunc("POST /tasks/create", api.CreateTaskHandler)
	mux.HandleFunc("PATCH /tasks/update", api.UpdateTaskHandler)
	mux.HandleFunc("DELETE /tasks/delete", api.DeleteTaskHandler)
	mux.HandleFunc("POST /tasks/hide", api.HideTaskHandler)
	mux.HandleFunc("GET /tasks", api.GetTasksHandler)
	mux.HandleFunc("GET /task", api.GetSingleTaskHandler)
}
