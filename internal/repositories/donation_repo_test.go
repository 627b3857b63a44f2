package repositories

import (
	"math"
	"testing"

	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/storage"
	"go.uber.org/zap"
)

func testDonation(id, streamerID string, amount float64, donor string, ts int64) *models.DonationMessage {
	return &models.DonationMessage{
		DonationID:   id,
		StreamerID:   streamerID,
		AmountUSD:    amount,
		DonorAddress: donor,
		TxHash:       "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
		Timestamp:    ts,
	}
}

func TestDonationSaveGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewDonationRepo(store, zap.NewNop())

	d := testDonation("d1", "s1", 5.0, "0x1234567890abcdef1234567890abcdef12345678", 100)
	d.Message = strptr("hello")
	if err := repo.Save(d); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := repo.GetByID("d1")
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got == nil || got.Message == nil || *got.Message != "hello" {
		t.Fatalf("GetByID() = %+v, want message hello", got)
	}

	if got, err := repo.GetByID("missing"); err != nil || got != nil {
		t.Errorf("GetByID(missing) = %+v, %v; want nil, nil", got, err)
	}

	exists, err := repo.Exists("d1")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v; want true", exists, err)
	}
}

func TestListByStreamerTimestampOrder(t *testing.T) {
	store := newTestStore(t)
	repo := NewDonationRepo(store, zap.NewNop())

	donor := "0x1234567890abcdef1234567890abcdef12345678"
	// Key order (a, b, c) deliberately disagrees with timestamp order.
	donations := []*models.DonationMessage{
		testDonation("a", "s1", 1.0, donor, 100),
		testDonation("b", "s1", 2.0, donor, 300),
		testDonation("c", "s1", 3.0, donor, 200),
		testDonation("d", "other", 4.0, donor, 999),
	}
	for _, d := range donations {
		if err := repo.Save(d); err != nil {
			t.Fatalf("Save(%s) error: %v", d.DonationID, err)
		}
	}

	got, err := repo.ListByStreamer("s1", 100)
	if err != nil {
		t.Fatalf("ListByStreamer() error: %v", err)
	}
	wantTS := []int64{300, 200, 100}
	if len(got) != len(wantTS) {
		t.Fatalf("ListByStreamer() returned %d donations, want %d", len(got), len(wantTS))
	}
	for i, ts := range wantTS {
		if got[i].Timestamp != ts {
			t.Errorf("ListByStreamer()[%d].Timestamp = %d, want %d", i, got[i].Timestamp, ts)
		}
	}
}

func TestListByStreamerLimitAppliesAfterSort(t *testing.T) {
	store := newTestStore(t)
	repo := NewDonationRepo(store, zap.NewNop())

	donor := "0x1234567890abcdef1234567890abcdef12345678"
	// The newest donation sits last in key order. A scan that stopped at
	// limit records before sorting would miss it.
	for _, d := range []*models.DonationMessage{
		testDonation("a", "s1", 1.0, donor, 100),
		testDonation("b", "s1", 2.0, donor, 200),
		testDonation("c", "s1", 3.0, donor, 500),
	} {
		if err := repo.Save(d); err != nil {
			t.Fatalf("Save(%s) error: %v", d.DonationID, err)
		}
	}

	got, err := repo.ListByStreamer("s1", 2)
	if err != nil {
		t.Fatalf("ListByStreamer() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByStreamer(limit=2) returned %d donations, want 2", len(got))
	}
	if got[0].Timestamp != 500 || got[1].Timestamp != 200 {
		t.Errorf("ListByStreamer(limit=2) timestamps = [%d, %d], want [500, 200]",
			got[0].Timestamp, got[1].Timestamp)
	}
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)
	repo := NewDonationRepo(store, zap.NewNop())

	// Two donors, one of them in two case variants.
	for _, d := range []*models.DonationMessage{
		testDonation("a", "s1", 1.0, "0xAbCd567890abcdef1234567890abcdef12345678", 100),
		testDonation("b", "s1", 5.0, "0xabcd567890abcdef1234567890abcdef12345678", 200),
		testDonation("c", "s1", 10.0, "0x9999999999999999999999999999999999999999", 300),
		testDonation("d", "s1", 5.0, "0xABCD567890ABCDEF1234567890ABCDEF12345678", 400),
	} {
		if err := repo.Save(d); err != nil {
			t.Fatalf("Save(%s) error: %v", d.DonationID, err)
		}
	}

	stats, err := repo.GetStats("s1")
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if math.Abs(stats.TotalAmountUSD-21.0) > 1e-9 {
		t.Errorf("TotalAmountUSD = %v, want 21.0", stats.TotalAmountUSD)
	}
	if stats.DonationCount != 4 {
		t.Errorf("DonationCount = %d, want 4", stats.DonationCount)
	}
	if stats.UniqueDonors != 2 {
		t.Errorf("UniqueDonors = %d, want 2", stats.UniqueDonors)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	store := newTestStore(t)
	repo := NewDonationRepo(store, zap.NewNop())

	stats, err := repo.GetStats("nobody")
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.TotalAmountUSD != 0 || stats.DonationCount != 0 || stats.UniqueDonors != 0 {
		t.Errorf("GetStats(unknown) = %+v, want zero stats", stats)
	}
}

func TestListByStreamerSkipsCorrupted(t *testing.T) {
	store := newTestStore(t)
	repo := NewDonationRepo(store, zap.NewNop())

	donor := "0x1234567890abcdef1234567890abcdef12345678"
	if err := repo.Save(testDonation("b", "s1", 1.0, donor, 100)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Put(storage.DonationKey("a-corrupt"), []byte("not json")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := repo.ListByStreamer("s1", 100)
	if err != nil {
		t.Fatalf("ListByStreamer() error: %v", err)
	}
	if len(got) != 1 || got[0].DonationID != "b" {
		t.Errorf("ListByStreamer() = %+v, want only donation b", got)
	}
}
