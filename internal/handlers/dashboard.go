package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "strainlog/internal/log"
	"strainlog/internal/views/pages"
	"strainlog/internal/views/theme"
	"strainlog/models"
)

// Dashboard renders the log history, statistics and forms.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, false) {
		return
	}

	data, err := loadDashboardData(r)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}
	renderDashboard(w, r, data)
}

func renderDashboard(w http.ResponseWriter, r *http.Request, data pages.DashboardData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.DashboardPartial(data)
	} else {
		component = pages.Dashboard(data)
	}

	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func loadDashboardData(r *http.Request) (pages.DashboardData, error) {
	ctx := r.Context()

	entries, err := service.Entries(ctx)
	if err != nil {
		return pages.DashboardData{}, err
	}
	stats, err := service.Stats(ctx)
	if err != nil {
		return pages.DashboardData{}, err
	}
	lists, err := service.Lists(ctx)
	if err != nil {
		return pages.DashboardData{}, err
	}

	return pages.DashboardData{
		Palette:      theme.Resolve(currentTheme(r)),
		ThemeOptions: theme.Options(),
		Flash:        popFlash(r),
		Entries:      pages.NewEntryCards(entries),
		Stats:        stats,
		Items:        lists.Items,
		Compounds:    lists.Compounds,
	}, nil
}

// currentTheme prefers the session value and falls back to the stored preference.
func currentTheme(r *http.Request) string {
	if key := sessionTheme(r); models.ValidTheme(key) {
		return key
	}
	key, err := service.Theme(r.Context())
	if err != nil {
		applog.Warn(r.Context(), "failed to load theme preference", "error", err)
		return models.DefaultTheme
	}
	return key
}
