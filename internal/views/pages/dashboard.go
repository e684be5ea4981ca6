// Package pages renders the dashboard and its htmx fragments.
package pages

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"strainlog/internal/effects"
	"strainlog/internal/recommend"
	"strainlog/internal/views/components"
	"strainlog/internal/views/theme"
	"strainlog/models"
)

// EntryCard is one row of the recent log list.
type EntryCard struct {
	Name       string
	Potency    int
	Compounds  []string
	TopEffects []string
	LoggedAt   string
}

// MatchView is one recommended item.
type MatchView struct {
	Name    string
	Percent int
}

// RecommendView is the recommendation panel state.
type RecommendView struct {
	Matches []MatchView
	Empty   bool
	Query   []int
}

// DashboardData is everything the dashboard renders.
type DashboardData struct {
	Palette      theme.Palette
	ThemeOptions []theme.Option
	Flash        string
	Entries      []EntryCard
	Stats        recommend.Summary
	Items        []string
	Compounds    []string
	Recommend    *RecommendView
}

// EffectFieldName is the form field carrying the slider for effect index i.
func EffectFieldName(i int) string {
	return "effect_" + strconv.Itoa(i)
}

// NewEntryCards converts entries into display rows.
func NewEntryCards(entries []models.Entry) []EntryCard {
	cards := make([]EntryCard, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, EntryCard{
			Name:       e.ItemName,
			Potency:    e.Potency,
			Compounds:  e.Compounds,
			TopEffects: recommend.TopEffects(e, 3),
			LoggedAt:   FormatLoggedAt(e.Timestamp),
		})
	}
	return cards
}

// NewRecommendView converts ranked matches into display rows.
func NewRecommendView(matches []recommend.Match, empty bool, query []int) *RecommendView {
	view := &RecommendView{Empty: empty, Query: query}
	for _, m := range matches {
		view.Matches = append(view.Matches, MatchView{Name: m.Name, Percent: m.Percent()})
	}
	return view
}

// FormatLoggedAt renders a timestamp for the log list.
func FormatLoggedAt(ts time.Time) string {
	if ts.IsZero() {
		return "—"
	}
	return ts.UTC().Format("02 Jan 2006 15:04")
}

// Body renders the card body text: compounds then top effects, joined by " | ".
func (c EntryCard) Body() string {
	var parts []string
	if len(c.Compounds) > 0 {
		parts = append(parts, "Terpenes: "+strings.Join(c.Compounds, ", "))
	}
	if len(c.TopEffects) > 0 {
		parts = append(parts, "Top effects: "+strings.Join(c.TopEffects, ", "))
	}
	return strings.Join(parts, " | ")
}

// Dashboard renders the full page.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>Strain Log</title><script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		h.Rawf(`<style>input[type=range]{accent-color:%s}</style></head>`, data.Palette.SliderAccent)
		h.Raw(`<body class="`)
		h.Text(data.Palette.BodyClass)
		h.Raw(`">`)
		h.Render(ctx, DashboardPartial(data))
		h.Raw(`</body></html>`)
		return h.Err()
	})
}

// DashboardPartial renders the page shell without the document wrapper.
func DashboardPartial(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<main id="dashboard" class="`)
		h.Text(data.Palette.ShellClass)
		h.Raw(`">`)
		h.Render(ctx, components.Flash(data.Flash))
		h.Render(ctx, history(data))
		h.Render(ctx, logForm(data))
		h.Render(ctx, recommendForm(data))
		h.Render(ctx, dataTools(data))
		h.Raw(`</main>`)
		return h.Err()
	})
}

func history(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Rawf(`<section id="home" class="%s">`, templ.EscapeString(data.Palette.PanelClass))
		if len(data.Entries) == 0 {
			h.Raw(`<p id="no-logs-message" class="empty-state">No logs yet. Record your first session below.</p>`)
			h.Raw(`</section>`)
			return h.Err()
		}

		h.Raw(`<dl id="stats" class="stats">`)
		h.Render(ctx, components.StatCard("Favorite strain", data.Stats.TopItem.String()))
		h.Render(ctx, components.StatCard("Favorite terpene", data.Stats.TopCompound.String()))
		h.Render(ctx, components.StatCard("Most common effect", data.Stats.TopEffect.String()))
		h.Raw(`</dl><ul id="logs-list">`)
		for _, card := range data.Entries {
			h.Raw(`<li><div class="log-header"><span>`)
			h.Text(card.Name)
			h.Raw(`</span><span>Intensity: `)
			h.Raw(strconv.Itoa(card.Potency))
			h.Raw(`</span><time>`)
			h.Text(card.LoggedAt)
			h.Raw(`</time></div><div class="log-body">`)
			h.Text(card.Body())
			h.Raw(`</div></li>`)
		}
		h.Raw(`</ul></section>`)
		return h.Err()
	})
}

func logForm(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Rawf(`<section id="log" class="%s"><h2>Log a session</h2>`, templ.EscapeString(data.Palette.PanelClass))
		h.Raw(`<form id="log-form" method="post" action="/app/logs">`)
		h.Raw(`<label for="strain-name">Strain</label><input id="strain-name" name="strain_name" list="strain-options" required maxlength="200">`)
		h.Render(ctx, components.Datalist("strain-options", data.Items))
		h.Raw(`<fieldset id="terpene-list"><legend>Terpenes</legend>`)
		for _, compound := range data.Compounds {
			h.Raw(`<label class="terpene-item"><input type="checkbox" name="terpenes" value="`)
			h.Text(compound)
			h.Raw(`"> `)
			h.Text(compound)
			h.Raw(`</label>`)
		}
		h.Raw(`<input id="new-terpene-input" name="terpenes" placeholder="Other terpene"></fieldset>`)
		h.Raw(`<div id="effects-inputs">`)
		for i, label := range effects.Labels() {
			h.Render(ctx, components.Slider(EffectFieldName(i), label, 0, effects.MaxRating))
		}
		h.Raw(`</div>`)
		h.Render(ctx, components.Slider("potency", "Potency", effects.DefaultPotency, effects.MaxRating))
		h.Raw(`<button type="submit">Save log</button></form></section>`)
		return h.Err()
	})
}

func recommendForm(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Rawf(`<section id="recommend" class="%s"><h2>Find a match</h2>`, templ.EscapeString(data.Palette.PanelClass))
		h.Raw(`<form id="recommend-form" method="post" action="/app/recommend" hx-post="/app/recommend" hx-target="#recommend-results" hx-swap="outerHTML">`)
		h.Raw(`<div id="recommend-inputs">`)
		for i, label := range effects.Labels() {
			value := 0
			if data.Recommend != nil && i < len(data.Recommend.Query) {
				value = data.Recommend.Query[i]
			}
			h.Render(ctx, components.Slider(EffectFieldName(i), label, value, effects.MaxRating))
		}
		h.Raw(`</div><button id="get-recommendations-btn" type="submit">Get recommendations</button></form>`)
		h.Render(ctx, RecommendResults(data.Recommend))
		h.Raw(`</section>`)
		return h.Err()
	})
}

// RecommendResults renders the recommendation list. A nil view renders an
// empty placeholder for htmx to swap into.
func RecommendResults(view *RecommendView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<div id="recommend-results">`)
		switch {
		case view == nil:
		case view.Empty:
			h.Raw(`<p class="empty-state">No logs available to generate recommendations.</p>`)
		case len(view.Matches) == 0:
			h.Raw(`<p class="empty-state">No suitable matches found.</p>`)
		default:
			for _, m := range view.Matches {
				h.Raw(`<div class="recommend-item"><h4>`)
				h.Text(m.Name)
				h.Raw(`</h4><p>Match: `)
				h.Raw(strconv.Itoa(m.Percent))
				h.Raw(`%</p></div>`)
			}
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

func dataTools(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Rawf(`<section id="settings" class="%s"><h2>Data</h2>`, templ.EscapeString(data.Palette.PanelClass))
		h.Raw(`<a id="export-btn" href="/app/export">Export data</a>`)
		h.Raw(`<form method="post" action="/app/import" enctype="multipart/form-data"><input id="import-input" type="file" name="file" accept="application/json,.json"><button id="import-btn" type="submit">Import data</button></form>`)
		h.Raw(`<form method="post" action="/app/clear" onsubmit="return confirm('Are you sure you want to delete all data?')"><button id="clear-data-btn" type="submit">Clear all data</button></form>`)
		h.Raw(`<form method="post" action="/app/preferences/update" hx-post="/app/preferences/update" hx-swap="none"><select name="theme">`)
		for _, opt := range data.ThemeOptions {
			h.Raw(`<option value="`)
			h.Text(opt.Value)
			h.Raw(`"`)
			if opt.Value == data.Palette.Key {
				h.Raw(` selected`)
			}
			h.Raw(`>`)
			h.Text(opt.Label)
			h.Raw(`</option>`)
		}
		h.Raw(`</select><button type="submit">Save theme</button></form></section>`)
		return h.Err()
	})
}
