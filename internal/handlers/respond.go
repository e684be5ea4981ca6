package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"strainlog/internal/archive"
	"strainlog/internal/journal"
	applog "strainlog/internal/log"
	"strainlog/internal/prefs"
	"strainlog/internal/recommend"
	"strainlog/internal/store"
)

var errServiceUnavailable = errors.New("handlers: service not configured")

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps service errors onto HTTP statuses and client-facing text.
func errorStatus(err error) (int, string) {
	var verr *journal.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, archive.ErrInvalidDocument):
		return http.StatusBadRequest, "Invalid JSON file."
	case errors.Is(err, recommend.ErrDimensionMismatch):
		return http.StatusBadRequest, "The effect profile must contain exactly 12 values."
	case errors.Is(err, recommend.ErrNegativeLimit):
		return http.StatusBadRequest, "The result limit must not be negative."
	case errors.Is(err, prefs.ErrBlankName):
		return http.StatusBadRequest, "A name is required."
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, errServiceUnavailable):
		return http.StatusServiceUnavailable, "Storage is unavailable. Please try again later."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error, asJSON bool) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	if asJSON {
		writeJSONError(w, status, message)
		return
	}
	http.Error(w, message, status)
}

func requireService(w http.ResponseWriter, r *http.Request, asJSON bool) bool {
	if service == nil {
		writeServiceError(w, r, errServiceUnavailable, asJSON)
		return false
	}
	return true
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func wantsJSON(r *http.Request) bool {
	return isJSONRequest(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}

func redirectToApp(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/app")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}
