package handlers

import (
	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/tracker"
)

// API serves the tracker over JSON HTTP.
type API struct {
	tracker  *tracker.Tracker
	identity session.Identity
}

func NewAPI(t *tracker.Tracker, identity session.Identity) *API {
	if identity == nil {
		identity = session.NewStatic()
	}
	return &API{tracker: t, identity: identity}
}
