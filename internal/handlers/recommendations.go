package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"strainlog/internal/effects"
	"strainlog/internal/recommend"
	"strainlog/internal/views/pages"
)

var errRatingOutOfRange = errors.New("rating out of range")

type recommendationRequest struct {
	Effects map[string]int `json:"effects"`
	Vector  []int          `json:"vector"`
	Limit   *int           `json:"limit"`
}

type matchResponse struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Percent int     `json:"percent"`
}

type recommendationResponse struct {
	Matches []matchResponse `json:"matches"`
	Empty   bool            `json:"empty"`
}

// Recommendations ranks logged items against a JSON effect profile.
func Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, true) {
		return
	}

	var req recommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid recommendation request.")
		return
	}

	query, err := req.query()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	topN := defaultTopN
	if req.Limit != nil {
		topN = *req.Limit
	}

	rec, err := service.Recommend(r.Context(), query, topN)
	if err != nil {
		writeServiceError(w, r, err, true)
		return
	}

	resp := recommendationResponse{Matches: make([]matchResponse, 0, len(rec.Matches)), Empty: rec.Empty}
	for _, m := range rec.Matches {
		resp.Matches = append(resp.Matches, matchResponse{Name: m.Name, Score: m.Score, Percent: m.Percent()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req recommendationRequest) query() ([]int, error) {
	var (
		query []int
		err   error
	)
	if req.Vector != nil {
		if len(req.Vector) != effects.Count {
			return nil, fmt.Errorf("%w: got %d values, want %d", recommend.ErrDimensionMismatch, len(req.Vector), effects.Count)
		}
		query = req.Vector
	} else {
		query, err = recommend.QueryFromRatings(req.Effects)
		if err != nil {
			return nil, err
		}
	}
	if err := checkRange(query); err != nil {
		return nil, err
	}
	return query, nil
}

func checkRange(query []int) error {
	for i, v := range query {
		if !effects.InRange(v) {
			return fmt.Errorf("%w: %s must be between %d and %d", errRatingOutOfRange, effects.Label(i), effects.MinRating, effects.MaxRating)
		}
	}
	return nil
}

// RecommendForm ranks logged items against the recommend form sliders and
// renders the results fragment, or the full dashboard for plain form posts.
func RecommendForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, false) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid submission.", http.StatusBadRequest)
		return
	}
	query, err := formQuery(r)
	if err == nil {
		err = checkRange(query)
	}
	if err != nil {
		http.Error(w, "Each slider must be a whole number between 0 and 10.", http.StatusBadRequest)
		return
	}

	rec, err := service.Recommend(r.Context(), query, defaultTopN)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}
	view := pages.NewRecommendView(rec.Matches, rec.Empty, query)

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pages.RecommendResults(view).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	data, err := loadDashboardData(r)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}
	data.Recommend = view
	renderDashboard(w, r, data)
}
