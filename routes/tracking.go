package routes

import (
	"net/http"

	"clementus360/daily-tracker/handlers"
)

// RegisterTrackingRoutes registers completion, analytics, annotation and
// settings routes
func RegisterTrackingRoutes(mux *http.ServeMux, api *handlers.API) {
	mux.HandleFunc("POST /completion/toggle", api.ToggleHandler)
	mux.HandleFunc("GET /days", api.DayHandler)
	mux.HandleFunc("GET /months", api.MonthHandler)
	mux.HandleFunc("GET /streak", api.StreakHandler)

	mux.HandleFunc("GET /comments", api.GetCommentsHandler)
	mux.HandleFunc("PUT /comments", api.PutCommentHandler)
	mux.HandleFunc("DELETE /comments", api.DeleteCommentHandler)
	mux.HandleFunc("GET /notes/today", api.GetTodayNotesHandler)
	mux.HandleFunc("PUT /notes/today", api.PutTodayNotesHandler)

	mux.HandleFunc("GET /settings", api.GetSettingsHandler)
	mux.HandleFunc("PATCH /settings", api.PatchSettingsHandler)
	mux.HandleFunc("POST /navigate", api.NavigateHandler)
}
