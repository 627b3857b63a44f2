package storage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// Key namespaces. Both entity kinds share one ordered keyspace, so a prefix
// scan over a kind is contiguous under lexicographic key ordering.
const (
	StreamerPrefix = "streamers:"
	DonationPrefix = "donations:"
)

var (
	// ErrStorage marks an I/O failure of the underlying store.
	ErrStorage = errors.New("storage failure")
	// ErrCorruptedRecord marks a stored value that cannot be decoded.
	ErrCorruptedRecord = errors.New("corrupted record")
	// ErrStopScan stops a Scan early without reporting an error.
	ErrStopScan = errors.New("stop scan")
)

func StreamerKey(id string) string { return StreamerPrefix + id }
func DonationKey(id string) string { return DonationPrefix + id }

// Store wraps an ordered byte-keyed LevelDB database.
type Store struct {
	db  *leveldb.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrStorage, path, err)
	}
	log.Info("leveldb opened", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

// OpenMemory opens a store backed by memory only. Used in tests.
func OpenMemory(log *zap.Logger) (*Store, error) {
	db, err := leveldb.Open(ldbstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open memory store: %v", ErrStorage, err)
	}
	return &Store{db: db, log: log}, nil
}

// Get returns the value for key and whether the key exists.
func (s *Store) Get(key string) ([]byte, bool, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %q: %v", ErrStorage, key, err)
	}
	return value, true, nil
}

// Put writes value under key, overwriting any existing value.
func (s *Store) Put(key string, value []byte) error {
	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%w: put %q: %v", ErrStorage, key, err)
	}
	return nil
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(key string) (bool, error) {
	existed, err := s.db.Has([]byte(key), nil)
	if err != nil {
		return false, fmt.Errorf("%w: has %q: %v", ErrStorage, key, err)
	}
	if !existed {
		return false, nil
	}
	if err := s.db.Delete([]byte(key), nil); err != nil {
		return false, fmt.Errorf("%w: delete %q: %v", ErrStorage, key, err)
	}
	return true, nil
}

// Scan calls fn for every key/value pair under prefix, in lexicographic key
// order. fn may return ErrStopScan to end the scan early; any other error
// aborts the scan and is returned to the caller.
func (s *Store) Scan(prefix string, fn func(key string, value []byte) error) error {
	it := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer it.Release()

	for it.Next() {
		// The iterator reuses its buffers between steps.
		key := string(it.Key())
		value := append([]byte(nil), it.Value()...)

		if err := fn(key, value); err != nil {
			if errors.Is(err, ErrStopScan) {
				return nil
			}
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("%w: scan %q: %v", ErrStorage, prefix, err)
	}
	return nil
}

// Close releases the underlying database. Must be called on every exit path.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrStorage, err)
	}
	s.log.Info("leveldb closed")
	return nil
}
