package mock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"strainlog/internal/db"
	applog "strainlog/internal/log"
	"strainlog/models"
)

var instances atomic.Int64

// New returns an in-memory sqlite database seeded with a short log history.
// Every call gets its own database so repeated calls never share rows.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:strainlog-mock-%d?mode=memory&cache=shared", instances.Add(1))
	database, err := gorm.Open(db.Dialector(dsn), db.Options(logger.Silent))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// Seed returns the entries New inserts, oldest first.
func Seed() []models.Entry {
	base := time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC)
	return []models.Entry{
		{
			ItemName:  "Blue Dream",
			Compounds: []string{"Myrcene", "Pinene"},
			EffectRatings: map[string]int{
				"Relaxed": 7, "Creative": 6, "Euphoric": 5, "Focused": 4, "Dry Mouth": 2,
			},
			Potency:   6,
			Timestamp: base,
		},
		{
			ItemName:  "Northern Lights",
			Compounds: []string{"Myrcene", "Caryophyllene"},
			EffectRatings: map[string]int{
				"Relaxed": 9, "Sleepy": 8, "Pain Relief": 6, "Couch-locked": 7, "Appetite Boost": 4,
			},
			Potency:   8,
			Timestamp: base.Add(24 * time.Hour),
		},
		{
			ItemName:  "Jack Herer",
			Compounds: []string{"Terpinolene", "Pinene", "Ocimene"},
			EffectRatings: map[string]int{
				"Creative": 8, "Focused": 8, "Euphoric": 6, "Giggly": 3, "Anxious": 1,
			},
			Potency:   7,
			Timestamp: base.Add(48 * time.Hour),
		},
		{
			ItemName:  "Blue Dream",
			Compounds: []string{"Myrcene", "Limonene"},
			EffectRatings: map[string]int{
				"Relaxed": 5, "Creative": 8, "Euphoric": 7, "Giggly": 4,
			},
			Potency:   5,
			Timestamp: base.Add(72 * time.Hour),
		},
	}
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	entries := Seed()
	for i := range entries {
		if err := database.WithContext(ctx).Create(&entries[i]).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "entries", len(entries))
	return nil
}
