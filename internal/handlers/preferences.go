package handlers

import (
	"net/http"
	"strings"

	applog "strainlog/internal/log"
	"strainlog/models"
)

type preferencesResponse struct {
	Theme string `json:"theme"`
}

// UpdatePreferences persists the dashboard theme in the store and the session.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	themeValue := strings.ToLower(strings.TrimSpace(r.FormValue("theme")))
	if !models.ValidTheme(themeValue) {
		applog.Debug(r.Context(), "received invalid theme selection", "value", themeValue)
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}

	if service == nil {
		applog.Debug(r.Context(), "service not configured; skipping preference persistence")
	} else if err := service.SetTheme(r.Context(), themeValue); err != nil {
		applog.Error(r.Context(), "failed to persist preferences", "error", err)
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}

	setSessionTheme(r, themeValue)
	writeJSON(w, http.StatusOK, preferencesResponse{Theme: themeValue})
}
