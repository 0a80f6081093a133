package handlers

import (
	"context"
	"net/http"

	"clementus360/daily-tracker/tracker"
)

type SyncResponse struct {
	Success bool               `json:"success"`
	Skipped bool               `json:"skipped,omitempty"`
	Status  tracker.SyncStatus `json:"status"`
}

func (a *API) PushHandler(w http.ResponseWriter, r *http.Request) {
	a.runSync(w, r, a.tracker.SyncNow)
}

func (a *API) PullHandler(w http.ResponseWriter, r *http.Request) {
	a.runSync(w, r, a.tracker.Refresh)
}

func (a *API) runSync(w http.ResponseWriter, r *http.Request, op func(ctx context.Context) error) {
	if !a.tracker.CanSync() {
		writeJSON(w, http.StatusOK, SyncResponse{Success: true, Skipped: true, Status: a.tracker.SyncStatus()})
		return
	}
	if err := op(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SyncResponse{Success: true, Status: a.tracker.SyncStatus()})
}

func (a *API) SyncStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SyncResponse{Success: true, Status: a.tracker.SyncStatus()})
}
