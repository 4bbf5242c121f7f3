// Package prefs is the device-local preference store: auth token, user
// snapshot, UI theme and the two favorite-id sets. It is the single
// source of truth for "is entity X favorited" — no server-side favorite
// model exists, so favorites live and die with this store.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/voguesoftware/projectdash/internal/models"
)

// Kind selects one of the two favorite sets. The values double as
// storage keys.
type Kind string

const (
	FavoriteProjects  Kind = "favoriteProjects"
	FavoriteResources Kind = "favoriteResources"
)

const (
	keyToken = "token"
	keyUser  = "user"
	keyTheme = "theme"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Store is injected into handlers so tests can substitute their own.
type Store interface {
	GetFavorites(kind Kind) ([]string, error)
	ToggleFavorite(kind Kind, id string) ([]string, error)
	GetUser() (*models.User, error)
	SetUser(models.User) error
	Token() (string, error)
	SetToken(string) error
	GetTheme() (string, error)
	SetTheme(string) error
	Clear() error
}

type entry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (entry) TableName() string { return "preferences" }

// DBStore persists preferences in a local sqlite file. Writes are
// last-writer-wins per key; two concurrent processes can race exactly as
// two browser tabs sharing local storage would.
type DBStore struct {
	mu sync.Mutex
	db *gorm.DB
}

// Open opens (or creates) the preference database at path.
func Open(path string) (*DBStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing gorm connection (used by tests with an
// in-memory sqlite DSN).
func NewWithDB(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate preference store: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) get(key string) (string, bool, error) {
	var e entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *DBStore) set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry{Key: key, Value: value}).Error
}

func (s *DBStore) GetFavorites(kind Kind) ([]string, error) {
	raw, ok, err := s.get(string(kind))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// A corrupted entry behaves like an empty set rather than
		// wedging every view that overlays favorites.
		return []string{}, nil
	}
	return ids, nil
}

// ToggleFavorite flips membership of id and persists immediately:
// present becomes removed, absent becomes appended. Returns the updated
// set.
func (s *DBStore) ToggleFavorite(kind Kind, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.GetFavorites(kind)
	if err != nil {
		return nil, err
	}
	next := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, id)
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := s.set(string(kind), string(raw)); err != nil {
		return nil, err
	}
	return next, nil
}

// GetUser returns the stored user snapshot, or nil when absent.
func (s *DBStore) GetUser() (*models.User, error) {
	raw, ok, err := s.get(keyUser)
	if err != nil || !ok {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

func (s *DBStore) SetUser(u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.set(keyUser, string(raw))
}

func (s *DBStore) Token() (string, error) {
	raw, _, err := s.get(keyToken)
	return raw, err
}

func (s *DBStore) SetToken(tok string) error { return s.set(keyToken, tok) }

func (s *DBStore) GetTheme() (string, error) {
	raw, ok, err := s.get(keyTheme)
	if err != nil {
		return "", err
	}
	if !ok || raw == "" {
		return ThemeSystem, nil
	}
	return raw, nil
}

func (s *DBStore) SetTheme(theme string) error { return s.set(keyTheme, theme) }

// Clear removes the token and user snapshot at logout. Theme and
// favorites survive.
func (s *DBStore) Clear() error {
	return s.db.Delete(&entry{}, "key IN ?", []string{keyToken, keyUser}).Error
}
