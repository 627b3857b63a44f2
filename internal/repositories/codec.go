package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/streamtips/backend/internal/models"
	"github.com/streamtips/backend/internal/storage"
)

// Stored values are plain JSON documents keyed by entity kind. Decoding is
// tolerant of missing optional fields but strict about the platform enum: an
// unknown platform means the record cannot be trusted, not defaulted.

func encodeStreamer(s *models.Streamer) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode streamer %s: %w", s.ID, err)
	}
	return data, nil
}

func decodeStreamer(data []byte) (*models.Streamer, error) {
	var s models.Streamer
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: streamer: %v", storage.ErrCorruptedRecord, err)
	}
	for _, p := range s.Platforms {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: streamer %s: unknown platform %q", storage.ErrCorruptedRecord, s.ID, p)
		}
	}
	return &s, nil
}

func encodeDonation(d *models.DonationMessage) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode donation %s: %w", d.DonationID, err)
	}
	return data, nil
}

func decodeDonation(data []byte) (*models.DonationMessage, error) {
	var d models.DonationMessage
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: donation: %v", storage.ErrCorruptedRecord, err)
	}
	return &d, nil
}
