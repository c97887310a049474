// Package store keeps fetched restaurants on disk so repeated runs within
// the same menu week do not hit the menu source.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mocno/bandex/pkg/defaults"
	"github.com/mocno/bandex/pkg/menu"
)

// FileName is the database file created under the user cache directory.
const FileName = "menus.db"

// Store is a SQLite backed cache of restaurants and their weekly menus.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	loc *time.Location
	now func() time.Time
}

// restaurantRecord is one cached restaurant. Menus holds the JSON encoded
// weekly menus.
type restaurantRecord struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	Menus     string    `gorm:"not null"`
	FetchedAt time.Time `gorm:"not null;index"`
}

func (restaurantRecord) TableName() string {
	return "restaurants"
}

// Option is a functional option for configuring Store instances.
type Option func(*Store)

// WithTTL sets how long a record is served after it was fetched.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithLocation sets the time zone used to find where a menu week starts.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// DefaultPath returns the database path under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to find user cache directory: %w", err)
	}
	return filepath.Join(dir, "bandex", FileName), nil
}

// Open opens the database at path, creating it and its directory if needed.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open menu store %s: %w", path, err)
	}

	if err := db.AutoMigrate(&restaurantRecord{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate menu store: %w", err)
	}

	s := &Store{
		db:  db,
		ttl: defaults.MenuCacheTTL,
		loc: time.Local,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	slog.Debug("menu store opened", "path", path, "ttl", s.ttl)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Fetcher wraps next so that fresh records are served from the store and
// everything else is fetched from next and saved. Store failures are logged
// and never fail the fetch.
func (s *Store) Fetcher(next menu.Fetcher) menu.Fetcher {
	return menu.FetcherFunc(func(ctx context.Context, id menu.RestaurantID) (*menu.Restaurant, error) {
		r, ok, err := s.Load(ctx, id)
		switch {
		case err != nil:
			slog.Warn("menu store lookup failed", "restaurant", int(id), "error", err)
		case ok:
			return r, nil
		}

		r, err = next.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := s.Save(ctx, r); err != nil {
			slog.Warn("failed to save restaurant to menu store", "restaurant", int(id), "error", err)
		}
		return r, nil
	})
}

// Load returns the stored restaurant with the given id if it is still fresh.
func (s *Store) Load(ctx context.Context, id menu.RestaurantID) (*menu.Restaurant, bool, error) {
	var rec restaurantRecord
	res := s.db.WithContext(ctx).Limit(1).Find(&rec, int(id))
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to read restaurant %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		lookupTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if !s.fresh(rec.FetchedAt) {
		lookupTotal.WithLabelValues("stale").Inc()
		return nil, false, nil
	}

	r := &menu.Restaurant{ID: menu.RestaurantID(rec.ID), Name: rec.Name}
	if err := json.Unmarshal([]byte(rec.Menus), &r.Menus); err != nil {
		return nil, false, fmt.Errorf("failed to decode menus of restaurant %d: %w", id, err)
	}

	lookupTotal.WithLabelValues("hit").Inc()
	return r, true, nil
}

// Save stores r, replacing any previous record of the same restaurant.
func (s *Store) Save(ctx context.Context, r *menu.Restaurant) error {
	menus, err := json.Marshal(r.Menus)
	if err != nil {
		return fmt.Errorf("failed to encode menus of restaurant %d: %w", r.ID, err)
	}

	rec := restaurantRecord{
		ID:        int(r.ID),
		Name:      r.Name,
		Menus:     string(menus),
		FetchedAt: s.now().UTC(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save restaurant %d: %w", r.ID, err)
	}
	return nil
}

// Prune deletes the records that can no longer be served and returns how
// many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("fetched_at < ?", s.cutoff().UTC()).
		Delete(&restaurantRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune menu store: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		slog.Debug("pruned menu store", "removed", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

// fresh reports whether a record fetched at t may still be served.
func (s *Store) fresh(t time.Time) bool {
	return !t.Before(s.cutoff())
}

// cutoff is the oldest fetch time still served: the later of the TTL bound
// and the start of the current menu week.
func (s *Store) cutoff() time.Time {
	now := s.now().In(s.loc)
	byTTL := now.Add(-s.ttl)
	if week := menu.WeekStart(now); week.After(byTTL) {
		return week
	}
	return byTTL
}
