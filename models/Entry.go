package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Entry is one logged session with an item. Entries are never edited after insert.
type Entry struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemName      string         `gorm:"not null;index" json:"strainName"`
	Compounds     []string       `gorm:"serializer:json;type:text" json:"terpenes"`
	EffectRatings map[string]int `gorm:"serializer:json;type:text" json:"effects"`
	Potency       int            `gorm:"not null" json:"potency"`
	Timestamp     time.Time      `gorm:"not null;index" json:"-"`
}

// TableName pins the table so renames of the Go type never move data.
func (Entry) TableName() string {
	return "entries"
}

// Rating returns the intensity recorded for label, treating absent labels as zero.
func (e Entry) Rating(label string) int {
	if e.EffectRatings == nil {
		return 0
	}
	return e.EffectRatings[label]
}

type entryJSON struct {
	ID            uint           `json:"id,omitempty"`
	ItemName      string         `json:"strainName"`
	Compounds     []string       `json:"terpenes"`
	EffectRatings map[string]int `json:"effects"`
	Potency       int            `json:"potency"`
	Timestamp     *timestampJSON `json:"timestamp,omitempty"`
}

// MarshalJSON encodes the entry in the export layout, with the timestamp as unix milliseconds.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		ID:            e.ID,
		ItemName:      e.ItemName,
		Compounds:     e.Compounds,
		EffectRatings: e.EffectRatings,
		Potency:       e.Potency,
	}
	if out.Compounds == nil {
		out.Compounds = []string{}
	}
	if out.EffectRatings == nil {
		out.EffectRatings = map[string]int{}
	}
	if !e.Timestamp.IsZero() {
		ts := timestampJSON(e.Timestamp)
		out.Timestamp = &ts
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the export layout. Timestamps may be unix milliseconds or RFC 3339 strings.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var in entryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Entry{
		ID:            in.ID,
		ItemName:      in.ItemName,
		Compounds:     in.Compounds,
		EffectRatings: in.EffectRatings,
		Potency:       in.Potency,
	}
	if in.Timestamp != nil {
		e.Timestamp = time.Time(*in.Timestamp)
	}
	return nil
}

type timestampJSON time.Time

func (t timestampJSON) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Time(t).UnixMilli(), 10)), nil
}

func (t *timestampJSON) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", raw, err)
		}
		*t = timestampJSON(parsed.UTC())
		return nil
	}
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse timestamp %s: %w", data, err)
	}
	*t = timestampJSON(time.UnixMilli(int64(ms)).UTC())
	return nil
}

// UniqueNames trims names, drops blanks and removes duplicates keeping the first occurrence.
func UniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
