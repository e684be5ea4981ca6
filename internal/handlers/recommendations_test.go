package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"strainlog/internal/views/pages"
)

func decodeRecommendation(t *testing.T, body []byte) recommendationResponse {
	t.Helper()
	var resp recommendationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode recommendation: %v", err)
	}
	return resp
}

func TestRecommendationsEmptyLog(t *testing.T) {
	withTestService(t)

	rec := serve(Recommendations, postJSON("/app/api/recommendations", `{"effects":{"Relaxed":5}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeRecommendation(t, rec.Body.Bytes())
	if !resp.Empty || len(resp.Matches) != 0 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if !strings.Contains(rec.Body.String(), `"matches":[]`) {
		t.Fatalf("expected an empty matches array, got %s", rec.Body.String())
	}
}

func TestRecommendationsRanksByEffects(t *testing.T) {
	j := withTestService(t)
	submitEntry(t, j, "Relaxer", map[string]int{"Relaxed": 9, "Sleepy": 6})
	submitEntry(t, j, "Thinker", map[string]int{"Focused": 9, "Creative": 7})
	submitEntry(t, j, "Mixed", map[string]int{"Relaxed": 4, "Focused": 4})
	submitEntry(t, j, "Giggler", map[string]int{"Giggly": 9})

	rec := serve(Recommendations, postJSON("/app/api/recommendations", `{"effects":{"relaxed":10}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeRecommendation(t, rec.Body.Bytes())
	if resp.Empty || len(resp.Matches) != 3 {
		t.Fatalf("expected three matches, got %+v", resp)
	}
	if resp.Matches[0].Name != "Relaxer" || resp.Matches[1].Name != "Mixed" {
		t.Fatalf("unexpected ranking %+v", resp.Matches)
	}
	if resp.Matches[0].Percent != 83 {
		t.Fatalf("Percent = %d, want 83", resp.Matches[0].Percent)
	}
}

func TestRecommendationsVectorAndLimit(t *testing.T) {
	j := withTestService(t)
	submitEntry(t, j, "A", map[string]int{"Relaxed": 5})
	submitEntry(t, j, "B", map[string]int{"Creative": 5})

	rec := serve(Recommendations, postJSON("/app/api/recommendations", `{"vector":[0,5,0,0,0,0,0,0,0,0,0,0],"limit":1}`))
	resp := decodeRecommendation(t, rec.Body.Bytes())
	if len(resp.Matches) != 1 || resp.Matches[0].Name != "B" || resp.Matches[0].Percent != 100 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestRecommendationsRejectsBadInput(t *testing.T) {
	j := withTestService(t)
	submitEntry(t, j, "A", map[string]int{"Relaxed": 5})

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"short vector", `{"vector":[1,2,3]}`},
		{"unknown effect", `{"effects":{"Hungry":3}}`},
		{"out of range", `{"effects":{"Relaxed":12}}`},
		{"negative limit", `{"effects":{"Relaxed":3},"limit":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(Recommendations, postJSON("/app/api/recommendations", tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRecommendFormHTMXFragment(t *testing.T) {
	j := withTestService(t)
	submitEntry(t, j, "Relaxer", map[string]int{"Relaxed": 9})

	form := url.Values{}
	form.Set(pages.EffectFieldName(0), "8")
	req := postForm("/app/recommend", form)
	req.Header.Set("HX-Request", "true")
	rec := serve(RecommendForm, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<div id="recommend-results">`) || !strings.Contains(body, "Match: 100%") {
		t.Fatalf("unexpected fragment %q", body)
	}
}

func TestRecommendFormFullPageKeepsSliders(t *testing.T) {
	withTestService(t)

	form := url.Values{}
	form.Set(pages.EffectFieldName(3), "6")
	rec := serve(RecommendForm, postForm("/app/recommend", form))

	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("expected a full page for non-htmx posts")
	}
	if !strings.Contains(body, "No logs available to generate recommendations.") {
		t.Fatal("expected empty-log message")
	}
	if !strings.Contains(body, `name="effect_3" value="6"`) {
		t.Fatal("expected the submitted slider value to be kept")
	}
}

func TestRecommendFormRejectsOutOfRange(t *testing.T) {
	withTestService(t)

	form := url.Values{}
	form.Set(pages.EffectFieldName(0), "42")
	rec := serve(RecommendForm, postForm("/app/recommend", form))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
