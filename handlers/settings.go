package handlers

import (
	"net/http"

	"clementus360/daily-tracker/tracker"
	"clementus360/daily-tracker/types"
)

// SettingsPatch carries only the settings to change. Layout and analytics
// entries are merged one name at a time.
type SettingsPatch struct {
	DarkMode  *bool          `json:"darkMode"`
	Layout    map[string]any `json:"layoutSettings"`
	Analytics map[string]any `json:"analyticsSettings"`
}

type NavigateRequest struct {
	Delta *int `json:"delta,omitempty"`
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Today bool `json:"today,omitempty"`
}

func (a *API) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.SettingsResponse{Success: true, Settings: a.tracker.Settings()})
}

func (a *API) PatchSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var patch SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, err)
		return
	}

	err := a.tracker.UpdateSettings(r.Context(), tracker.SettingsUpdate{
		DarkMode:  patch.DarkMode,
		Layout:    patch.Layout,
		Analytics: patch.Analytics,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SettingsResponse{Success: true, Settings: a.tracker.Settings()})
}

func (a *API) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}

	var year, month int
	switch {
	case req.Today:
		year, month = a.tracker.NavigateToday()
	case req.Delta != nil:
		year, month = a.tracker.NavigateMonth(*req.Delta)
	case req.Year != nil && req.Month != nil:
		if err := a.tracker.NavigateTo(*req.Year, *req.Month); err != nil {
			writeFailure(w, err)
			return
		}
		year, month = *req.Year, *req.Month
	default:
		writeError(w, "Expected delta, year and month, or today", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, types.NavigateResponse{Success: true, Year: year, Month: month})
}
