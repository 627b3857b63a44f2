package repositories

import (
	"strings"

	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/storage"
	"go.uber.org/zap"
)

type StreamerRepo struct {
	store *storage.Store
	log   *zap.Logger
}

func NewStreamerRepo(store *storage.Store, log *zap.Logger) *StreamerRepo {
	return &StreamerRepo{store: store, log: log}
}

// Save upserts the streamer by id, fully overwriting any existing record.
func (r *StreamerRepo) Save(s *models.Streamer) error {
	data, err := encodeStreamer(s)
	if err != nil {
		return err
	}
	return r.store.Put(storage.StreamerKey(s.ID), data)
}

// GetByID returns the streamer, or nil if absent. A corrupted record is an
// error here: it is the single record directly requested.
func (r *StreamerRepo) GetByID(id string) (*models.Streamer, error) {
	data, found, err := r.store.Get(storage.StreamerKey(id))
	if err != nil || !found {
		return nil, err
	}
	return decodeStreamer(data)
}

// GetByWallet scans the streamer keyspace for a wallet address, compared
// case-insensitively. First match in key order wins. There is no secondary
// index in this phase; the scan is the intended implementation.
func (r *StreamerRepo) GetByWallet(address string) (*models.Streamer, error) {
	var match *models.Streamer

	err := r.store.Scan(storage.StreamerPrefix, func(key string, value []byte) error {
		s, err := decodeStreamer(value)
		if err != nil {
			r.log.Warn("skipping corrupted streamer record", zap.String("key", key), zap.Error(err))
			return nil
		}
		if strings.EqualFold(s.WalletAddress, address) {
			match = s
			return storage.ErrStopScan
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// ListAll returns up to limit streamers in key order. The limit counts
// successfully decoded records; corrupted ones are skipped and logged.
func (r *StreamerRepo) ListAll(limit int) ([]models.Streamer, error) {
	streamers := make([]models.Streamer, 0)

	err := r.store.Scan(storage.StreamerPrefix, func(key string, value []byte) error {
		if len(streamers) >= limit {
			return storage.ErrStopScan
		}
		s, err := decodeStreamer(value)
		if err != nil {
			r.log.Warn("skipping corrupted streamer record", zap.String("key", key), zap.Error(err))
			return nil
		}
		streamers = append(streamers, *s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return streamers, nil
}

// Delete removes the streamer and reports whether it existed.
func (r *StreamerRepo) Delete(id string) (bool, error) {
	return r.store.Delete(storage.StreamerKey(id))
}

func (r *StreamerRepo) Exists(id string) (bool, error) {
	s, err := r.GetByID(id)
	if err != nil {
		return false, err
	}
	return s != nil, nil
}
