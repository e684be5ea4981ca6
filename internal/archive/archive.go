// Package archive reads and writes the portable export document.
package archive

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"strainlog/internal/effects"
	"strainlog/models"
)

// FileName is the suggested name for downloaded exports.
const FileName = "strain-tracker-data.json"

// ErrInvalidDocument is returned for malformed or incomplete documents.
var ErrInvalidDocument = errors.New("archive: invalid document")

// Build assembles an export document. Nil inputs are written as empty arrays.
func Build(entries []models.Entry, strains, terpenes []string) models.Document {
	doc := models.Document{
		Logs:     entries,
		Strains:  strains,
		Terpenes: terpenes,
	}
	if doc.Logs == nil {
		doc.Logs = []models.Entry{}
	}
	if doc.Strains == nil {
		doc.Strains = []string{}
	}
	if doc.Terpenes == nil {
		doc.Terpenes = []string{}
	}
	return doc
}

// Encode writes doc as two-space indented JSON.
func Encode(w io.Writer, doc models.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// Decode parses a document. Sections missing from the input stay nil so the
// caller can tell "absent" from "empty". Logs are normalized as by Normalize.
func Decode(r io.Reader) (models.Document, error) {
	var doc models.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return Normalize(doc)
}

// Normalize returns doc with every log brought to the shape Submit produces:
// trimmed strain names and de-duplicated terpenes. Blank names and values
// outside the rating scale are rejected. doc itself is not modified.
func Normalize(doc models.Document) (models.Document, error) {
	if doc.Logs == nil {
		return doc, nil
	}
	logs := make([]models.Entry, len(doc.Logs))
	for i, entry := range doc.Logs {
		entry.ItemName = strings.TrimSpace(entry.ItemName)
		if entry.ItemName == "" {
			return models.Document{}, fmt.Errorf("%w: log %d has no strain name", ErrInvalidDocument, i)
		}
		entry.Compounds = models.UniqueNames(entry.Compounds)
		if !effects.InRange(entry.Potency) {
			return models.Document{}, fmt.Errorf("%w: log %d potency %d is outside %d..%d", ErrInvalidDocument, i, entry.Potency, effects.MinRating, effects.MaxRating)
		}
		if err := checkRatings(entry.EffectRatings); err != nil {
			return models.Document{}, fmt.Errorf("%w: log %d %v", ErrInvalidDocument, i, err)
		}
		logs[i] = entry
	}
	doc.Logs = logs
	return doc, nil
}

func checkRatings(ratings map[string]int) error {
	labels := make([]string, 0, len(ratings))
	for label := range ratings {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if value := ratings[label]; !effects.InRange(value) {
			return fmt.Errorf("rating %q = %d is outside %d..%d", label, value, effects.MinRating, effects.MaxRating)
		}
	}
	return nil
}
