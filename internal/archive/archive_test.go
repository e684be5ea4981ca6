package archive

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"strainlog/internal/recommend"
	"strainlog/models"
)

func sampleEntries() []models.Entry {
	ts := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	return []models.Entry{
		{
			ID:            1,
			ItemName:      "Blue Dream",
			Compounds:     []string{"Myrcene", "Pinene"},
			EffectRatings: map[string]int{"Relaxed": 7, "Creative": 4},
			Potency:       6,
			Timestamp:     ts,
		},
		{
			ID:            2,
			ItemName:      "Sour Diesel",
			Compounds:     []string{"Limonene"},
			EffectRatings: map[string]int{"Focused": 8, "Dry Mouth": 3},
			Potency:       8,
			Timestamp:     ts.Add(time.Hour),
		},
	}
}

func TestRoundTripPreservesCoreResults(t *testing.T) {
	t.Parallel()

	entries := sampleEntries()
	doc := Build(entries, []string{"Blue Dream", "Sour Diesel"}, []string{"Myrcene"})

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	assertSameEntries(t, decoded.Logs, entries)
	if !reflect.DeepEqual(decoded.Strains, doc.Strains) || !reflect.DeepEqual(decoded.Terpenes, doc.Terpenes) {
		t.Fatalf("lists changed: %v %v", decoded.Strains, decoded.Terpenes)
	}

	if got, want := recommend.Summarize(decoded.Logs), recommend.Summarize(entries); got != want {
		t.Fatalf("summary changed: %+v vs %+v", got, want)
	}

	query := []int{5, 5, 0, 0, 0, 5, 0, 0, 0, 0, 0, 0}
	before, err := recommend.Rank(recommend.Vectorize(entries), query, 3)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	after, err := recommend.Rank(recommend.Vectorize(decoded.Logs), query, 3)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("ranking changed: %v vs %v", before, after)
	}
}

func TestEncodeUsesExportLayout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, Build(nil, nil, nil)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "{\n  \"logs\": [],\n  \"strains\": [],\n  \"terpenes\": []\n}\n"
	if buf.String() != want {
		t.Fatalf("Encode() = %q, want %q", buf.String(), want)
	}
}

func TestDecodeKeepsAbsentSectionsNil(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(`{"strains": []}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Logs != nil || doc.Terpenes != nil {
		t.Fatalf("expected absent sections to be nil, got %+v", doc)
	}
	if doc.Strains == nil {
		t.Fatal("expected present empty section to be non-nil")
	}
}

func TestDecodeAcceptsPartialEffects(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(`{"logs":[{"strainName":"X","terpenes":[],"effects":{"Giggly":4},"potency":3,"timestamp":"2024-01-02T03:04:05Z"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(doc.Logs) != 1 || doc.Logs[0].Rating("Giggly") != 4 || doc.Logs[0].Rating("Relaxed") != 0 {
		t.Fatalf("unexpected logs %+v", doc.Logs)
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"logs": [`},
		{"not an object", `[1, 2]`},
		{"blank strain", `{"logs":[{"strainName":"A"},{"strainName":"  "}]}`},
		{"bad timestamp", `{"logs":[{"strainName":"A","timestamp":"yesterday"}]}`},
		{"potency above scale", `{"logs":[{"strainName":"A","potency":99}]}`},
		{"negative rating", `{"logs":[{"strainName":"A","effects":{"Relaxed":-40}}]}`},
		{"rating above scale", `{"logs":[{"strainName":"A","effects":{"Giggly":11}}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Decode(strings.NewReader(tt.input)); !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("Decode(%s) error = %v, want ErrInvalidDocument", tt.input, err)
			}
		})
	}
}

func TestDecodeNormalizesLogs(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(`{"logs":[
		{"strainName":"A","terpenes":["Pinene","Pinene","Pinene"]},
		{"strainName":"  D  ","terpenes":[" Myrcene ","","Myrcene"]}
	]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := doc.Logs[0].Compounds; !reflect.DeepEqual(got, []string{"Pinene"}) {
		t.Fatalf("log 0 terpenes = %q, want [Pinene]", got)
	}
	if doc.Logs[1].ItemName != "D" {
		t.Fatalf("log 1 strain name = %q, want D", doc.Logs[1].ItemName)
	}
	if got := doc.Logs[1].Compounds; !reflect.DeepEqual(got, []string{"Myrcene"}) {
		t.Fatalf("log 1 terpenes = %q, want [Myrcene]", got)
	}

	summary := recommend.Summarize(doc.Logs)
	if summary.TopCompound != recommend.Some("Pinene") {
		t.Fatalf("TopCompound = %s, want Pinene", summary.TopCompound)
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := models.Document{Logs: []models.Entry{{ItemName: " Blue Dream ", Compounds: []string{"Myrcene", "Myrcene"}}}}
	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out.Logs[0].ItemName != "Blue Dream" || len(out.Logs[0].Compounds) != 1 {
		t.Fatalf("unexpected normalized log %+v", out.Logs[0])
	}
	if in.Logs[0].ItemName != " Blue Dream " || len(in.Logs[0].Compounds) != 2 {
		t.Fatalf("input was modified: %+v", in.Logs[0])
	}
}

func assertSameEntries(t *testing.T, got, want []models.Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if !g.Timestamp.Equal(w.Timestamp) {
			t.Fatalf("entry %d timestamp = %s, want %s", i, g.Timestamp, w.Timestamp)
		}
		g.Timestamp, w.Timestamp = time.Time{}, time.Time{}
		if !reflect.DeepEqual(g, w) {
			t.Fatalf("entry %d changed across round trip:\n got %+v\nwant %+v", i, g, w)
		}
	}
}
