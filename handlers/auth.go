package handlers

import (
	"net/http"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/types"
)

func (a *API) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := decodeBody(r, &creds); err != nil {
		writeFailure(w, err)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, "Missing email or password", http.StatusBadRequest)
		return
	}

	user, err := a.identity.SignIn(r.Context(), creds)
	if err != nil {
		config.Logger.WithError(err).Warn("Sign-in failed")
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true, Authenticated: true, UserID: user.ID, Email: user.Email})
}

func (a *API) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.identity.SignOut(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true})
}

func (a *API) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := a.identity.CurrentUser()
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true, Authenticated: ok, UserID: user.ID, Email: user.Email})
}
