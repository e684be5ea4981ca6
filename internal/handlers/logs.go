package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"strainlog/internal/effects"
	"strainlog/internal/journal"
	"strainlog/internal/views/pages"
	"strainlog/models"
)

type logRequest struct {
	StrainName string         `json:"strainName"`
	Terpenes   []string       `json:"terpenes"`
	Effects    map[string]int `json:"effects"`
	Potency    *int           `json:"potency"`
}

// CreateLog appends an entry from the log form or a JSON body.
func CreateLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	asJSON := isJSONRequest(r)
	if !requireService(w, r, asJSON) {
		return
	}

	var (
		input journal.EntryInput
		err   error
	)
	if asJSON {
		input, err = decodeLogJSON(r)
	} else {
		input, err = parseLogForm(r)
	}
	if err != nil {
		if asJSON {
			writeJSONError(w, http.StatusBadRequest, "Invalid log submission.")
		} else {
			http.Error(w, "Invalid log submission.", http.StatusBadRequest)
		}
		return
	}

	entry, err := service.Submit(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err, asJSON)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusCreated, entry)
		return
	}
	setFlash(r, "Log saved.")
	redirectToApp(w, r)
}

func decodeLogJSON(r *http.Request) (journal.EntryInput, error) {
	var req logRequest
	if err := decodeJSON(r, &req); err != nil {
		return journal.EntryInput{}, err
	}
	potency := effects.DefaultPotency
	if req.Potency != nil {
		potency = *req.Potency
	}
	return journal.EntryInput{
		ItemName:  req.StrainName,
		Compounds: req.Terpenes,
		Ratings:   req.Effects,
		Potency:   potency,
	}, nil
}

func parseLogForm(r *http.Request) (journal.EntryInput, error) {
	if err := r.ParseForm(); err != nil {
		return journal.EntryInput{}, err
	}

	ratings, err := formRatings(r)
	if err != nil {
		return journal.EntryInput{}, err
	}
	potency, err := formInt(r, "potency", effects.DefaultPotency)
	if err != nil {
		return journal.EntryInput{}, err
	}

	var compounds []string
	for _, value := range r.PostForm["terpenes"] {
		compounds = append(compounds, strings.Split(value, ",")...)
	}

	return journal.EntryInput{
		ItemName:  r.PostFormValue("strain_name"),
		Compounds: compounds,
		Ratings:   ratings,
		Potency:   potency,
	}, nil
}

// formRatings reads one slider per effect, in catalogue order.
func formRatings(r *http.Request) (map[string]int, error) {
	ratings := make(map[string]int, effects.Count)
	for i, label := range effects.Labels() {
		value, err := formInt(r, pages.EffectFieldName(i), 0)
		if err != nil {
			return nil, err
		}
		ratings[label] = value
	}
	return ratings, nil
}

func formQuery(r *http.Request) ([]int, error) {
	ratings, err := formRatings(r)
	if err != nil {
		return nil, err
	}
	query := make([]int, effects.Count)
	for i, label := range effects.Labels() {
		query[i] = ratings[label]
	}
	return query, nil
}

func formInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// ListLogs returns every entry, newest first.
func ListLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, true) {
		return
	}

	entries, err := service.Entries(r.Context())
	if err != nil {
		writeServiceError(w, r, err, true)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
