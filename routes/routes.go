package routes

import (
	"net/http"

	"clementus360/daily-tracker/handlers"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, api *handlers.API) {
	RegisterTaskRoutes(mux, api)
	RegisterTrackingRoutes(mux, api)
	RegisterDataRoutes(mux, api)
	RegisterSyncRoutes(mux, api)
}
