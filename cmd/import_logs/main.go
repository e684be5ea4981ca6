package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"strainlog/internal/config"
	"strainlog/internal/db"
	"strainlog/internal/effects"
	"strainlog/internal/journal"
	"strainlog/internal/prefs"
	"strainlog/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_logs <file.json|file.csv>")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, out io.Writer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("import path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close(database)

	lists, err := prefs.Open(cfg.Prefs)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer lists.Close()

	imported, err := importFile(ctx, journal.New(store.New(database), lists), path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d logs from %s\n", imported, filepath.Base(path))
	return nil
}

// importFile loads path into j. A JSON export replaces the sections it
// carries; CSV rows are appended as new entries.
func importFile(ctx context.Context, j *journal.Journal, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		result, err := j.ImportFrom(ctx, file)
		if err != nil {
			return 0, fmt.Errorf("import document: %w", err)
		}
		return result.Logs, nil
	case ".csv":
		records, err := readCSV(file)
		if err != nil {
			return 0, fmt.Errorf("read csv: %w", err)
		}
		imported := 0
		for idx, record := range records {
			in, err := buildInput(record)
			if err != nil {
				return imported, fmt.Errorf("row %d: %w", idx+2, err)
			}
			if _, err := j.Submit(ctx, in); err != nil {
				return imported, fmt.Errorf("row %d: %w", idx+2, err)
			}
			imported++
		}
		return imported, nil
	default:
		return 0, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildInput(row map[string]string) (journal.EntryInput, error) {
	in := journal.EntryInput{
		ItemName:  row["Strain Name"],
		Compounds: splitCompounds(row["Terpenes"]),
		Ratings:   make(map[string]int, effects.Count),
		Potency:   effects.DefaultPotency,
	}

	if raw := row["Potency"]; raw != "" {
		potency, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("potency %q is not a number", raw)
		}
		in.Potency = potency
	}

	for _, label := range effects.Labels() {
		raw := row[label]
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("%s rating %q is not a number", label, raw)
		}
		in.Ratings[label] = value
	}

	if raw := row["Timestamp"]; raw != "" {
		ts, err := parseTimestamp(raw)
		if err != nil {
			return in, err
		}
		in.Timestamp = ts
	}

	return in, nil
}

func splitCompounds(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if name := strings.TrimSpace(field); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func parseTimestamp(value string) (time.Time, error) {
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q is neither RFC 3339 nor unix milliseconds", value)
	}
	return ts.UTC(), nil
}
