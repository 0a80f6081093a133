package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"clementus360/daily-tracker/config"
	"clementus360/daily-tracker/types"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		config.Logger.WithError(err).Warn("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, types.MessageResponse{
		Success:      false,
		ErrorMessage: message,
	})
}

// writeFailure maps err onto a status code and writes it.
func writeFailure(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		config.Logger.WithError(err).Error("Request failed")
	}
	writeError(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrDuplicateKey), errors.Is(err, types.ErrBuiltinTask):
		return http.StatusConflict
	case errors.Is(err, types.ErrTaskNotFound), errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrEmptyLabel),
		errors.Is(err, types.ErrInvalidColor),
		errors.Is(err, types.ErrInvalidPriority),
		errors.Is(err, types.ErrInvalidSlot),
		errors.Is(err, types.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrRemote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", types.ErrValidation)
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s: %w", name, types.ErrValidation)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, types.ErrValidation)
	}
	return n, nil
}

// dateFromQuery reads year, month (0-based) and day.
func dateFromQuery(r *http.Request) (types.Date, error) {
	var d types.Date
	var err error
	if d.Year, err = queryInt(r, "year"); err != nil {
		return d, err
	}
	if d.Month, err = queryInt(r, "month"); err != nil {
		return d, err
	}
	if d.Day, err = queryInt(r, "day"); err != nil {
		return d, err
	}
	return d, d.Validate()
}
