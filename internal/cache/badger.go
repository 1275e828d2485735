package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/kdsprimark-ship-it/shipdesk/internal/config"
	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/port"
)

// SchemaVersion tags every durable key so that incompatible historical data
// is never loaded into a newer schema.
const SchemaVersion = "v1"

// CollectionKey returns the durable key for one entity collection.
func CollectionKey(kind domain.Kind) string {
	return fmt.Sprintf("shipdesk/%s/collections/%s", SchemaVersion, kind)
}

// SettingsKey is the durable key for the settings record.
func SettingsKey() string {
	return fmt.Sprintf("shipdesk/%s/settings", SchemaVersion)
}

// AuthKey is the durable key for the authenticated flag.
func AuthKey() string {
	return fmt.Sprintf("shipdesk/%s/auth", SchemaVersion)
}

// BadgerStore implements port.CacheStore on an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

var _ port.CacheStore = (*BadgerStore)(nil)

// NewBadgerStore opens (or creates) the cache database at cfg.Dir. With
// cfg.InMemory set, nothing touches disk — used by tests and ephemeral runs.
func NewBadgerStore(cfg *config.CacheConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", cfg.Dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// Save marshals value as JSON and writes it under key.
func (s *BadgerStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache value for %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("writing cache key %s: %w", key, err)
	}
	return nil
}

// Load reads key into out. A missing key or a value that does not parse as
// JSON leaves out untouched and returns false; corrupted entries are dropped
// so they do not resurface on the next load.
func (s *BadgerStore) Load(key string, out any) bool {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		_ = s.Delete(key)
		return false
	}
	return true
}

// Delete removes key. Deleting an absent key is not an error.
func (s *BadgerStore) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache key %s: %w", key, err)
	}
	return nil
}

// Reset drops every durable entry — the factory-reset path.
func (s *BadgerStore) Reset() error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("resetting cache: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// SetRaw writes raw bytes under key, bypassing JSON marshaling. Exists so
// tests can plant corrupted entries.
func (s *BadgerStore) SetRaw(key string, raw []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}
