// Package filestore is the local/dev storage backend: one JSON document on
// disk holding every entity array, read and rewritten wholesale on each
// mutation. It implements the same repository interfaces as the Postgres
// backend and is selected once at startup, never as a per-request fallback.
package filestore

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/telvana/streampanel/internal/models"
)

type document struct {
	Users         []models.User         `json:"users"`
	Channels      []models.Channel      `json:"channels"`
	CatalogItems  []models.CatalogItem  `json:"catalog_items"`
	Subscriptions []models.Subscription `json:"subscriptions"`
	GiftCards     []models.GiftCard     `json:"gift_cards"`
	ApiKeys       []models.ApiKey       `json:"api_keys"`
	LastID        int64                 `json:"last_id"`
}

type Store struct {
	path string
	mu   sync.RWMutex
	doc  document
}

// Open loads the JSON document at path, creating an empty one (and any
// missing parent directories) if it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := json.Unmarshal(raw, &s.doc); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return s, nil
}

// save rewrites the whole document. Callers must hold the write lock.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// nextID hands out ids shared across all entity arrays, mirroring a single
// database sequence.
func (s *Store) nextID() int64 {
	s.doc.LastID++
	return s.doc.LastID
}
