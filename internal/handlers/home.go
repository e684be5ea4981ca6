package handlers

import "net/http"

// Home serves the dashboard at the site root and 404s every other unmatched path.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	Dashboard(w, r)
}
