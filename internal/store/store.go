// Package store persists logged entries through gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"strainlog/models"
)

// ErrUnavailable is returned when the store has no database handle.
var ErrUnavailable = errors.New("store: database unavailable")

// Entries is the append-only log of entries.
type Entries struct {
	db  *gorm.DB
	now func() time.Time
}

// New wraps database. A nil database yields a store whose calls fail with ErrUnavailable.
func New(database *gorm.DB) *Entries {
	return &Entries{db: database, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Entries) conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrUnavailable
	}
	return s.db.WithContext(ctx), nil
}

// Add inserts entry and fills in its ID. A zero timestamp is set to now.
func (s *Entries) Add(ctx context.Context, entry *models.Entry) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if err := conn.Create(entry).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// List returns every entry in insertion order, read as one snapshot.
func (s *Entries) List(ctx context.Context) ([]models.Entry, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var entries []models.Entry
	err = conn.Transaction(func(tx *gorm.DB) error {
		return tx.Order("id asc").Find(&entries).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Recent returns every entry, newest first.
func (s *Entries) Recent(ctx context.Context) ([]models.Entry, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var entries []models.Entry
	if err := conn.Order("timestamp desc").Order("id desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}
	return entries, nil
}

// Count reports how many entries are stored.
func (s *Entries) Count(ctx context.Context) (int64, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := conn.Model(&models.Entry{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Clear deletes every entry.
func (s *Entries) Clear(ctx context.Context) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := deleteAll(conn); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

// Replace swaps the whole log for entries in one transaction. Incoming IDs
// are discarded; new IDs follow the order of entries.
func (s *Entries) Replace(ctx context.Context, entries []models.Entry) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}

	rows := make([]models.Entry, len(entries))
	for i, entry := range entries {
		entry.ID = 0
		if entry.Timestamp.IsZero() {
			entry.Timestamp = s.now()
		}
		rows[i] = entry
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("replace entries: %w", err)
	}
	return nil
}

func deleteAll(tx *gorm.DB) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Entry{}).Error
}
