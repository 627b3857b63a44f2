package repositories

import (
	"sort"
	"strings"

	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/storage"
	"go.uber.org/zap"
)

// statsListCeiling bounds the donation list used for stats aggregation.
const statsListCeiling = 10000

type DonationRepo struct {
	store *storage.Store
	log   *zap.Logger
}

func NewDonationRepo(store *storage.Store, log *zap.Logger) *DonationRepo {
	return &DonationRepo{store: store, log: log}
}

// Save writes the donation. Ids are freshly generated by the caller, so in
// practice this is insert-only; the store semantics are still an upsert.
func (r *DonationRepo) Save(d *models.DonationMessage) error {
	data, err := encodeDonation(d)
	if err != nil {
		return err
	}
	return r.store.Put(storage.DonationKey(d.DonationID), data)
}

// GetByID returns the donation, or nil if absent.
func (r *DonationRepo) GetByID(id string) (*models.DonationMessage, error) {
	data, found, err := r.store.Get(storage.DonationKey(id))
	if err != nil || !found {
		return nil, err
	}
	return decodeDonation(data)
}

func (r *DonationRepo) Exists(id string) (bool, error) {
	d, err := r.GetByID(id)
	if err != nil {
		return false, err
	}
	return d != nil, nil
}

// ListByStreamer returns the streamer's donations sorted by timestamp
// descending, truncated to limit. Key order and timestamp order are
// independent, so the whole donations keyspace is scanned before sorting;
// the limit applies to the sorted result, never to the scan itself.
func (r *DonationRepo) ListByStreamer(streamerID string, limit int) ([]models.DonationMessage, error) {
	donations := make([]models.DonationMessage, 0)

	err := r.store.Scan(storage.DonationPrefix, func(key string, value []byte) error {
		d, err := decodeDonation(value)
		if err != nil {
			r.log.Warn("skipping corrupted donation record", zap.String("key", key), zap.Error(err))
			return nil
		}
		if d.StreamerID == streamerID {
			donations = append(donations, *d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(donations, func(i, j int) bool {
		return donations[i].Timestamp > donations[j].Timestamp
	})

	if limit >= 0 && len(donations) > limit {
		donations = donations[:limit]
	}
	return donations, nil
}

// GetStats aggregates total amount, count and case-insensitively distinct
// donor addresses over the streamer's donations. An unknown streamer yields
// empty stats, not an error.
func (r *DonationRepo) GetStats(streamerID string) (*models.DonationStats, error) {
	donations, err := r.ListByStreamer(streamerID, statsListCeiling)
	if err != nil {
		return nil, err
	}

	stats := &models.DonationStats{}
	donors := make(map[string]struct{})
	for _, d := range donations {
		stats.TotalAmountUSD += d.AmountUSD
		stats.DonationCount++
		donors[strings.ToLower(d.DonorAddress)] = struct{}{}
	}
	stats.UniqueDonors = len(donors)
	return stats, nil
}
