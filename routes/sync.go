package routes

import (
	"net/http"

	"clementus360/daily-tracker/handlers"
)

// RegisterSyncRoutes registers remote sync and auth routes
func RegisterSyncRoutes(mux *http.ServeMux, api *handlers.API) {
	mux.HandleFunc("POST /sync/push", api.PushHandler)
	mux.HandleFunc("POST /sync/pull", api.PullHandler)
	mux.HandleFunc("GET /sync/status", api.SyncStatusHandler)

	mux.HandleFunc("POST /auth/signin", api.SignInHandler)
	mux.HandleFunc("POST /auth/signout", api.SignOutHandler)
	mux.HandleFunc("GET /auth/user", api.CurrentUserHandler)
}
