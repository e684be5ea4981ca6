package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"strainlog/internal/journal"
	"strainlog/internal/recommend"
	"strainlog/models"
)

const (
	sessionFlashKey = "flash"
	sessionThemeKey = "theme"
)

// Service is the application behaviour the handlers expose over HTTP.
type Service interface {
	Submit(ctx context.Context, in journal.EntryInput) (models.Entry, error)
	Entries(ctx context.Context) ([]models.Entry, error)
	Recommend(ctx context.Context, query []int, topN int) (journal.Recommendation, error)
	Stats(ctx context.Context) (recommend.Summary, error)
	Lists(ctx context.Context) (journal.Lists, error)
	AddCompound(ctx context.Context, name string) (bool, error)
	Export(ctx context.Context) (models.Document, error)
	ImportFrom(ctx context.Context, r io.Reader) (journal.ImportResult, error)
	Clear(ctx context.Context) error
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

var (
	sessionManager *scs.SessionManager
	service        Service
	defaultTopN    = recommend.DefaultTopN
)

// Configure installs the shared dependencies used by the HTTP handlers.
// A topN below zero keeps the current default.
func Configure(sm *scs.SessionManager, svc Service, topN int) {
	sessionManager = sm
	service = svc
	if topN >= 0 {
		defaultTopN = topN
	}
}

func setFlash(r *http.Request, message string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), sessionFlashKey, message)
}

func popFlash(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.PopString(r.Context(), sessionFlashKey)
}

func setSessionTheme(r *http.Request, key string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(r.Context(), sessionThemeKey, key)
}

func sessionTheme(r *http.Request) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.GetString(r.Context(), sessionThemeKey)
}
