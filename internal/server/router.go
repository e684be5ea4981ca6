package server

import (
	"context"
	"net/http"

	"strainlog/internal/handlers"
	applog "strainlog/internal/log"
	"strainlog/internal/metrics"
)

type route struct {
	path    string
	handler http.Handler
}

func routes() []route {
	return []route{
		{"/healthz", http.HandlerFunc(handlers.Health)},
		{"/metrics", metrics.Handler()},
		{"/app", http.HandlerFunc(handlers.Dashboard)},
		{"/app/logs", http.HandlerFunc(handlers.CreateLog)},
		{"/app/recommend", http.HandlerFunc(handlers.RecommendForm)},
		{"/app/export", http.HandlerFunc(handlers.Export)},
		{"/app/import", http.HandlerFunc(handlers.Import)},
		{"/app/clear", http.HandlerFunc(handlers.Clear)},
		{"/app/preferences/update", http.HandlerFunc(handlers.UpdatePreferences)},
		{"/app/api/logs", http.HandlerFunc(handlers.ListLogs)},
		{"/app/api/stats", http.HandlerFunc(handlers.Stats)},
		{"/app/api/recommendations", http.HandlerFunc(handlers.Recommendations)},
		{"/app/api/lists", http.HandlerFunc(handlers.Lists)},
		{"/app/api/compounds", http.HandlerFunc(handlers.AddCompound)},
		{"/", http.HandlerFunc(handlers.Home)},
	}
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	for _, rt := range routes() {
		mux.Handle(rt.path, rt.handler)
		applog.Debug(context.Background(), "route registered", "path", rt.path)
	}
	return mux
}
