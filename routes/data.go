package routes

import (
	"net/http"

	"clementus360/daily-tracker/handlers"
)

// RegisterDataRoutes registers export, import, backup and archive routes
func RegisterDataRoutes(mux *http.ServeMux, api *handlers.API) {
	mux.HandleFunc("GET /export", api.ExportHandler)
	mux.HandleFunc("POST /import", api.ImportHandler)
	mux.HandleFunc("GET /backups", api.BackupsHandler)
	mux.HandleFunc("POST /backups/restore", api.RestoreBackupHandler)
	mux.HandleFunc("GET /archives", api.ArchivesHandler)
	mux.HandleFunc("POST /archives", api.CreateArchiveHandler)
	mux.HandleFunc("POST /archives/restore", api.RestoreArchiveHandler)
	mux.HandleFunc("POST /archives/cloud", api.CloudUploadHandler)
	mux.HandleFunc("POST /archives/cloud/restore", api.CloudRestoreHandler)
}
