package handlers

import (
	"net/http"
	"strings"

	"strainlog/internal/journal"
)

// Stats returns the favourite item, compound and effect. Absent values are null.
func Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, true) {
		return
	}

	summary, err := service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, true)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Lists returns the remembered strain and terpene names.
func Lists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, true) {
		return
	}

	lists, err := service.Lists(r.Context())
	if err != nil {
		writeServiceError(w, r, err, true)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

type compoundRequest struct {
	Name string `json:"name"`
}

type compoundResponse struct {
	Name  string        `json:"name"`
	Added bool          `json:"added"`
	Lists journal.Lists `json:"lists"`
}

// AddCompound remembers a new terpene name.
func AddCompound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, true) {
		return
	}

	var req compoundRequest
	if isJSONRequest(r) {
		if err := decodeJSON(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid terpene submission.")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid terpene submission.")
			return
		}
		req.Name = r.PostFormValue("name")
	}
	name := strings.TrimSpace(req.Name)

	added, err := service.AddCompound(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err, true)
		return
	}
	lists, err := service.Lists(r.Context())
	if err != nil {
		writeServiceError(w, r, err, true)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, compoundResponse{Name: name, Added: added, Lists: lists})
}
