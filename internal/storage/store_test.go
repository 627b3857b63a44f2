package storage

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory(zap.NewNop())
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetDelete(t *testing.T) {
	store := newTestStore(t)

	if _, found, err := store.Get("streamers:missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v; want absent, nil", found, err)
	}

	if err := store.Put("streamers:a", []byte("one")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	value, found, err := store.Get("streamers:a")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v; want found", found, err)
	}
	if string(value) != "one" {
		t.Errorf("Get() = %q, want %q", value, "one")
	}

	// Overwrite
	if err := store.Put("streamers:a", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite error: %v", err)
	}
	value, _, _ = store.Get("streamers:a")
	if string(value) != "two" {
		t.Errorf("Get() after overwrite = %q, want %q", value, "two")
	}

	existed, err := store.Delete("streamers:a")
	if err != nil || !existed {
		t.Fatalf("Delete() = existed %v, err %v; want existed", existed, err)
	}
	existed, err = store.Delete("streamers:a")
	if err != nil || existed {
		t.Fatalf("Delete() twice = existed %v, err %v; want not existed", existed, err)
	}
}

func TestScanOrderAndIsolation(t *testing.T) {
	store := newTestStore(t)

	entries := map[string]string{
		"donations:x": "dx",
		"streamers:c": "sc",
		"streamers:a": "sa",
		"streamers:b": "sb",
	}
	for k, v := range entries {
		if err := store.Put(k, []byte(v)); err != nil {
			t.Fatalf("Put(%q) error: %v", k, err)
		}
	}

	var keys []string
	err := store.Scan(StreamerPrefix, func(key string, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	want := []string{"streamers:a", "streamers:b", "streamers:c"}
	if len(keys) != len(want) {
		t.Fatalf("Scan() visited %d keys, want %d: %v", len(keys), len(want), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Scan() key[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestScanEarlyStop(t *testing.T) {
	store := newTestStore(t)

	for _, k := range []string{"streamers:a", "streamers:b", "streamers:c"} {
		if err := store.Put(k, []byte("v")); err != nil {
			t.Fatalf("Put(%q) error: %v", k, err)
		}
	}

	var visited int
	err := store.Scan(StreamerPrefix, func(key string, value []byte) error {
		visited++
		if visited == 2 {
			return ErrStopScan
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Scan() with early stop error: %v", err)
	}
	if visited != 2 {
		t.Errorf("Scan() visited %d keys, want 2", visited)
	}
}

func TestScanPropagatesCallbackError(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put("streamers:a", []byte("v")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	wantErr := errors.New("boom")
	err := store.Scan(StreamerPrefix, func(key string, value []byte) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("Scan() error = %v, want %v", err, wantErr)
	}
}

func TestKeyHelpers(t *testing.T) {
	if got := StreamerKey("abc"); got != "streamers:abc" {
		t.Errorf("StreamerKey() = %q", got)
	}
	if got := DonationKey("abc"); got != "donations:abc" {
		t.Errorf("DonationKey() = %q", got)
	}
}
