package handlers

import (
	"net/http"

	"clementus360/daily-tracker/types"
)

// ToggleRequest names either a full date or a day of the month in view.
type ToggleRequest struct {
	TaskKey string      `json:"task_key"`
	Date    *types.Date `json:"date,omitempty"`
	Day     int         `json:"day,omitempty"`
}

func (a *API) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if req.TaskKey == "" {
		writeError(w, "Missing task_key", http.StatusBadRequest)
		return
	}

	date := req.Date
	if date == nil {
		year, month := a.tracker.ViewMonth()
		date = &types.Date{Year: year, Month: month, Day: req.Day}
	}
	done, err := a.tracker.Toggle(r.Context(), req.TaskKey, *date)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.ToggleResponse{
		Success:    true,
		TaskKey:    req.TaskKey,
		Date:       *date,
		Done:       done,
		Percentage: a.tracker.CompletionPercentage(*date),
	})
}

func (a *API) DayHandler(w http.ResponseWriter, r *http.Request) {
	date, err := dateFromQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	resp := types.DayResponse{
		Success:    true,
		Date:       date,
		Percentage: a.tracker.CompletionPercentage(date),
		Completed:  types.ItemsOf(a.tracker.CompletedTasksForDay(date)),
	}
	if comment, ok := a.tracker.Comment(date); ok {
		resp.Comment = &comment
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) MonthHandler(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeFailure(w, err)
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeFailure(w, err)
		return
	}
	summary, err := a.tracker.MonthSummary(year, month)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": summary,
	})
}

func (a *API) StreakHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	date, err := dateFromQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	n, err := a.tracker.Streak(key, date)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.StreakResponse{Success: true, TaskKey: key, AsOf: date, Streak: n})
}
