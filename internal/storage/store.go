// Package storage is the durable local state of the client: the single
// persisted session token and a best-effort cache of fetched collections.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

const (
	tokenKey    = "session/token"
	cachePrefix = "cache/"
)

// Store wraps a Badger database under the app data directory.
type Store struct {
	db *badger.DB
}

// Open opens or creates the store at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	opts := badger.DefaultOptions(filepath.Join(dir, "state")).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the persisted session token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

// SaveToken persists the session token, overwriting any previous one.
// Exactly one token is stored; there is no multi-account keying.
func (s *Store) SaveToken(token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tokenKey), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken removes the persisted token. Clearing an absent token is not
// an error.
func (s *Store) ClearToken() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(tokenKey))
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// PutList caches a fetched collection under its name.
func (s *Store) PutList(collection string, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s cache: %w", collection, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cachePrefix+collection), buf)
	})
}

// List loads a cached collection into out. The second return is false
// when the collection is not cached.
func (s *Store) List(collection string, out any) (bool, error) {
	var buf []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cachePrefix + collection))
		if err != nil {
			return err
		}
		buf, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s cache: %w", collection, err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return false, fmt.Errorf("decode %s cache: %w", collection, err)
	}
	return true, nil
}

// Invalidate drops cached collections after a mutation.
func (s *Store) Invalidate(collections ...string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, collection := range collections {
			if err := txn.Delete([]byte(cachePrefix + collection)); err != nil {
				return err
			}
		}
		return nil
	})
}
