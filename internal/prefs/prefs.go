// Package prefs keeps the remembered item and compound names plus the UI
// theme in a small badger key-value store.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"strainlog/internal/config"
	"strainlog/internal/effects"
	"strainlog/models"
)

const (
	itemsKey     = "strainsList"
	compoundsKey = "terpenesList"
	themeKey     = "theme"
)

// ErrBlankName is returned when a name is empty after trimming.
var ErrBlankName = errors.New("prefs: name must not be blank")

// Store is the preference key-value store.
type Store struct {
	db *badger.DB
}

// Open opens the store at cfg.Path, or in memory when cfg.InMemory is set or
// no path is configured.
func Open(cfg config.PrefsConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory || strings.TrimSpace(cfg.Path) == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open prefs store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Items returns the remembered item names in the order they were first seen.
func (s *Store) Items(ctx context.Context) ([]string, error) {
	var items []string
	if err := s.db.View(func(txn *badger.Txn) error {
		return readList(txn, itemsKey, &items)
	}); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// Compounds returns the remembered compounds, or the built-in defaults when
// nothing has been stored yet.
func (s *Store) Compounds(ctx context.Context) ([]string, error) {
	var compounds []string
	if err := s.db.View(func(txn *badger.Txn) error {
		return readList(txn, compoundsKey, &compounds)
	}); err != nil {
		return nil, fmt.Errorf("read compounds: %w", err)
	}
	if len(compounds) == 0 {
		return effects.DefaultCompounds(), nil
	}
	return compounds, nil
}

// RememberItem appends name to the item list unless it is already there.
func (s *Store) RememberItem(ctx context.Context, name string) (bool, error) {
	return s.remember(itemsKey, name, nil)
}

// RememberCompound appends name to the compound list unless it is already there.
func (s *Store) RememberCompound(ctx context.Context, name string) (bool, error) {
	return s.remember(compoundsKey, name, effects.DefaultCompounds())
}

func (s *Store) remember(key, name string, fallback []string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrBlankName
	}

	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		var list []string
		if err := readList(txn, key, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			list = fallback
		}
		for _, existing := range list {
			if existing == name {
				return nil
			}
		}
		added = true
		return writeList(txn, key, append(list, name))
	})
	if err != nil {
		return false, fmt.Errorf("remember %s: %w", key, err)
	}
	return added, nil
}

// Replace overwrites the stored lists. A nil list leaves that list untouched.
func (s *Store) Replace(ctx context.Context, items, compounds []string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if items != nil {
			if err := writeList(txn, itemsKey, models.UniqueNames(items)); err != nil {
				return err
			}
		}
		if compounds != nil {
			if err := writeList(txn, compoundsKey, models.UniqueNames(compounds)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace lists: %w", err)
	}
	return nil
}

// Reset empties the item list and restores the default compounds.
func (s *Store) Reset(ctx context.Context) error {
	return s.Replace(ctx, []string{}, effects.DefaultCompounds())
}

// Theme returns the stored theme key, or the default theme.
func (s *Store) Theme(ctx context.Context) (string, error) {
	theme := ""
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(themeKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			theme = string(val)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	return models.NormalizeTheme(theme), nil
}

// SetTheme stores the theme key, normalising unknown values to the default.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	theme = models.NormalizeTheme(theme)
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(themeKey), []byte(theme))
	}); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

func readList(txn *badger.Txn, key string, out *[]string) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func writeList(txn *badger.Txn, key string, list []string) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}
