package models

// DonationMessage is a recorded paid donation. Immutable once created.
type DonationMessage struct {
	DonationID   string  `json:"donation_id"`
	StreamerID   string  `json:"streamer_id"`
	AmountUSD    float64 `json:"amount_usd"`
	DonorAddress string  `json:"donor_address"`
	TxHash       string  `json:"tx_hash"`
	Timestamp    int64   `json:"timestamp"`
	Message      *string `json:"message"`
	ClipURL      *string `json:"clip_url"`
}

type DonationStats struct {
	TotalAmountUSD float64 `json:"total_amount_usd"`
	DonationCount  int     `json:"donation_count"`
	UniqueDonors   int     `json:"unique_donors"`
}
