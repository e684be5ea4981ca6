// Package journal coordinates the entry log, the remembered name lists and
// the pure recommendation functions behind one service.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"strainlog/internal/archive"
	"strainlog/internal/effects"
	applog "strainlog/internal/log"
	"strainlog/internal/metrics"
	"strainlog/internal/recommend"
	"strainlog/models"
)

// EntryStore persists logged entries.
type EntryStore interface {
	Add(ctx context.Context, entry *models.Entry) error
	List(ctx context.Context) ([]models.Entry, error)
	Recent(ctx context.Context) ([]models.Entry, error)
	Clear(ctx context.Context) error
	Replace(ctx context.Context, entries []models.Entry) error
}

// ListStore persists the known item and compound names and the UI theme.
type ListStore interface {
	Items(ctx context.Context) ([]string, error)
	Compounds(ctx context.Context) ([]string, error)
	RememberItem(ctx context.Context, name string) (bool, error)
	RememberCompound(ctx context.Context, name string) (bool, error)
	Replace(ctx context.Context, items, compounds []string) error
	Reset(ctx context.Context) error
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

// EntryInput is a submission from the log form or the JSON API.
type EntryInput struct {
	ItemName  string         `validate:"required,max=200"`
	Compounds []string       `validate:"-"`
	Ratings   map[string]int `validate:"dive,keys,effectlabel,endkeys,gte=0,lte=10"`
	Potency   int            `validate:"gte=0,lte=10"`
	Timestamp time.Time      `validate:"-"`
}

// Recommendation is the ranked result plus whether any entries existed at all.
type Recommendation struct {
	Matches []recommend.Match `json:"matches"`
	Empty   bool              `json:"empty"`
}

// Lists holds the remembered names offered as suggestions.
type Lists struct {
	Items     []string `json:"strains"`
	Compounds []string `json:"terpenes"`
}

// ImportResult reports what an import replaced.
type ImportResult struct {
	Logs          int  `json:"logs"`
	LogsReplaced  bool `json:"logsReplaced"`
	Strains       int  `json:"strains"`
	Terpenes      int  `json:"terpenes"`
	ListsReplaced bool `json:"listsReplaced"`
}

// Journal is the application service.
type Journal struct {
	entries EntryStore
	lists   ListStore
}

// New builds a Journal over the given stores.
func New(entries EntryStore, lists ListStore) *Journal {
	return &Journal{entries: entries, lists: lists}
}

// Submit validates in, appends it to the log and remembers its names. Once
// the entry is stored Submit succeeds even if the name lists cannot be updated.
func (j *Journal) Submit(ctx context.Context, in EntryInput) (models.Entry, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		ItemName:      in.ItemName,
		Compounds:     in.Compounds,
		EffectRatings: in.Ratings,
		Potency:       in.Potency,
		Timestamp:     in.Timestamp,
	}
	if err := j.entries.Add(ctx, &entry); err != nil {
		return models.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	metrics.RecordEntryLogged()

	// List sync failures never fail a stored entry.
	if _, err := j.lists.RememberItem(ctx, entry.ItemName); err != nil {
		applog.Warn(ctx, "failed to remember strain", "strain", entry.ItemName, "error", err)
	}
	for _, compound := range entry.Compounds {
		if _, err := j.lists.RememberCompound(ctx, compound); err != nil {
			applog.Warn(ctx, "failed to remember terpene", "terpene", compound, "error", err)
		}
	}

	applog.Debug(ctx, "entry logged", "id", entry.ID, "strain", entry.ItemName)
	return entry, nil
}

func normalizeInput(in EntryInput) EntryInput {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.Compounds = models.UniqueNames(in.Compounds)

	ratings := make(map[string]int, len(in.Ratings))
	for label, value := range in.Ratings {
		if canonical, ok := effects.Resolve(label); ok {
			label = canonical
		}
		ratings[label] = value
	}
	in.Ratings = ratings
	return in
}

// Entries returns the log newest first.
func (j *Journal) Entries(ctx context.Context) ([]models.Entry, error) {
	entries, err := j.entries.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return entries, nil
}

// Recommend ranks every logged item against query and keeps at most topN.
func (j *Journal) Recommend(ctx context.Context, query []int, topN int) (Recommendation, error) {
	entries, err := j.entries.List(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("load entries: %w", err)
	}

	matches, err := recommend.Rank(recommend.Vectorize(entries), query, topN)
	if err != nil {
		return Recommendation{}, err
	}
	metrics.RecordRecommendation()

	return Recommendation{Matches: matches, Empty: len(entries) == 0}, nil
}

// Stats summarises the whole log.
func (j *Journal) Stats(ctx context.Context) (recommend.Summary, error) {
	entries, err := j.entries.List(ctx)
	if err != nil {
		return recommend.Summary{}, fmt.Errorf("load entries: %w", err)
	}
	return recommend.Summarize(entries), nil
}

// Lists returns the remembered item and compound names.
func (j *Journal) Lists(ctx context.Context) (Lists, error) {
	items, err := j.lists.Items(ctx)
	if err != nil {
		return Lists{}, err
	}
	compounds, err := j.lists.Compounds(ctx)
	if err != nil {
		return Lists{}, err
	}
	return Lists{Items: items, Compounds: compounds}, nil
}

// AddCompound remembers a compound name for future suggestions.
func (j *Journal) AddCompound(ctx context.Context, name string) (bool, error) {
	return j.lists.RememberCompound(ctx, name)
}

// Theme returns the stored UI theme.
func (j *Journal) Theme(ctx context.Context) (string, error) {
	return j.lists.Theme(ctx)
}

// SetTheme stores the UI theme.
func (j *Journal) SetTheme(ctx context.Context, theme string) error {
	return j.lists.SetTheme(ctx, theme)
}

// Export builds the portable document holding every entry and both lists.
func (j *Journal) Export(ctx context.Context) (models.Document, error) {
	entries, err := j.entries.List(ctx)
	if err != nil {
		return models.Document{}, fmt.Errorf("load entries: %w", err)
	}
	lists, err := j.Lists(ctx)
	if err != nil {
		return models.Document{}, fmt.Errorf("load lists: %w", err)
	}
	return archive.Build(entries, lists.Items, lists.Compounds), nil
}

// Import replaces the sections present in doc. Absent sections are left as
// they are. Logs are normalized first; out-of-range values reject the whole
// document with archive.ErrInvalidDocument.
func (j *Journal) Import(ctx context.Context, doc models.Document) (ImportResult, error) {
	var result ImportResult

	doc, err := archive.Normalize(doc)
	if err != nil {
		metrics.RecordImport("invalid")
		return result, err
	}

	if doc.Logs != nil {
		if err := j.entries.Replace(ctx, doc.Logs); err != nil {
			metrics.RecordImport("error")
			return result, fmt.Errorf("import logs: %w", err)
		}
		result.Logs = len(doc.Logs)
		result.LogsReplaced = true
	}

	if doc.Strains != nil || doc.Terpenes != nil {
		if err := j.lists.Replace(ctx, doc.Strains, doc.Terpenes); err != nil {
			metrics.RecordImport("error")
			return result, fmt.Errorf("import lists: %w", err)
		}
		result.ListsReplaced = true
	}
	result.Strains = len(doc.Strains)
	result.Terpenes = len(doc.Terpenes)

	metrics.RecordImport("success")
	applog.Info(ctx, "data imported", "logs", result.Logs, "logs_replaced", result.LogsReplaced, "lists_replaced", result.ListsReplaced)
	return result, nil
}

// ImportFrom decodes a document from r and imports it.
func (j *Journal) ImportFrom(ctx context.Context, r io.Reader) (ImportResult, error) {
	doc, err := archive.Decode(r)
	if err != nil {
		if errors.Is(err, archive.ErrInvalidDocument) {
			metrics.RecordImport("invalid")
		}
		return ImportResult{}, err
	}
	return j.Import(ctx, doc)
}

// Clear deletes every entry and restores the default lists.
func (j *Journal) Clear(ctx context.Context) error {
	if err := j.entries.Clear(ctx); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if err := j.lists.Reset(ctx); err != nil {
		return fmt.Errorf("reset lists: %w", err)
	}
	applog.Info(ctx, "all data cleared")
	return nil
}
