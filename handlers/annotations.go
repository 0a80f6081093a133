package handlers

import (
	"net/http"

	"clementus360/daily-tracker/types"
)

type CommentRequest struct {
	types.Date
	Comment string `json:"comment"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

func (a *API) GetCommentsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.CommentsResponse{Success: true, Comments: a.tracker.Comments()})
}

func (a *API) PutCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if err := a.tracker.SetComment(r.Context(), req.Date, req.Comment); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Comment saved"})
}

func (a *API) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	date, err := dateFromQuery(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if err := a.tracker.ClearComment(r.Context(), date); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Comment removed"})
}

func (a *API) GetTodayNotesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.NotesResponse{
		Success: true,
		DateKey: a.tracker.Today().DateKey(),
		Notes:   a.tracker.TodayNotes(),
	})
}

func (a *API) PutTodayNotesHandler(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, err)
		return
	}
	a.tracker.SetTodayNotes(r.Context(), req.Notes)
	writeJSON(w, http.StatusOK, types.NotesResponse{
		Success: true,
		DateKey: a.tracker.Today().DateKey(),
		Notes:   req.Notes,
	})
}
