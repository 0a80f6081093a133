package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"clementus360/daily-tracker/backup"
	"clementus360/daily-tracker/store"
	"clementus360/daily-tracker/tracker"
	"clementus360/daily-tracker/types"
)

// maxImportSize bounds an uploaded import document.
const maxImportSize = 16 << 20

type BackupsResponse struct {
	Success bool          `json:"success"`
	Backups []backup.Slot `json:"backups"`
}

type ArchivesResponse struct {
	Success  bool                 `json:"success"`
	Archives []store.ArchiveEntry `json:"archives"`
}

type ArchiveResponse struct {
	Success bool               `json:"success"`
	Archive store.ArchiveEntry `json:"archive"`
}

func (a *API) ExportHandler(w http.ResponseWriter, r *http.Request) {
	b, err := a.tracker.Export()
	if err != nil {
		writeFailure(w, err)
		return
	}
	name := tracker.ExportFileName(a.tracker.Today().Time())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (a *API) ImportHandler(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		writeError(w, "Could not read import body", http.StatusRequestEntityTooLarge)
		return
	}
	if err := a.tracker.Import(r.Context(), b); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Data imported successfully!"})
}

func (a *API) BackupsHandler(w http.ResponseWriter, r *http.Request) {
	slots, err := a.tracker.Backups(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BackupsResponse{Success: true, Backups: slots})
}

func (a *API) RestoreBackupHandler(w http.ResponseWriter, r *http.Request) {
	slot, err := queryInt(r, "slot")
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := a.tracker.Restore(r.Context(), slot); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: fmt.Sprintf("Restored backup %d", slot)})
}

func (a *API) ArchivesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := a.tracker.Archives(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	if list == nil {
		list = []store.ArchiveEntry{}
	}
	writeJSON(w, http.StatusOK, ArchivesResponse{Success: true, Archives: list})
}

func (a *API) CreateArchiveHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := a.tracker.Archive(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ArchiveResponse{Success: true, Archive: entry})
}

func (a *API) RestoreArchiveHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, "Invalid archive id", http.StatusBadRequest)
		return
	}
	if err := a.tracker.RestoreArchive(r.Context(), id); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Archive restored"})
}

func (a *API) CloudUploadHandler(w http.ResponseWriter, r *http.Request) {
	name, err := a.tracker.UploadExport(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.MessageResponse{Success: true, Message: name})
}

func (a *API) CloudRestoreHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, "Missing archive name", http.StatusBadRequest)
		return
	}
	if err := a.tracker.ImportCloud(r.Context(), name); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Data imported successfully!"})
}
