package models

import (
	"fmt"
	"math"
	"strings"
)

type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTwitch  Platform = "twitch"
)

func (p Platform) Valid() bool {
	return p == PlatformYouTube || p == PlatformTwitch
}

const (
	MaxNameLength         = 50
	MaxThankYouLength     = 500
	MaxPopupMessageLength = 100

	MinTiers = 1
	MaxTiers = 10

	MinDurationMS     = 1000
	MaxDurationMS     = 30000
	DefaultDurationMS = 3000

	DefaultThankYouMessage = "Thank you for your support!"
)

// DonationTier is a price point with the popup shown when it is hit.
type DonationTier struct {
	AmountUSD    float64 `json:"amount_usd"`
	PopupMessage string  `json:"popup_message"`
	DurationMS   int     `json:"duration_ms"`
}

type Streamer struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	WalletAddress   string         `json:"wallet_address"`
	Platforms       []Platform     `json:"platforms"`
	AvatarURL       *string        `json:"avatar_url"`
	DonationTiers   []DonationTier `json:"donation_tiers"`
	ThankYouMessage string         `json:"thank_you_message"`
}

// ValidateTiers checks the tier-list invariant: 1..10 tiers, amounts strictly
// ascending (which makes them pairwise distinct), non-blank popup messages
// within length bounds, durations within display bounds.
func ValidateTiers(tiers []DonationTier) error {
	if len(tiers) < MinTiers || len(tiers) > MaxTiers {
		return fmt.Errorf("donation tiers must have between %d and %d entries, got %d", MinTiers, MaxTiers, len(tiers))
	}
	for i, tier := range tiers {
		if tier.AmountUSD <= 0 {
			return fmt.Errorf("tier %d: amount must be positive, got %.2f", i, tier.AmountUSD)
		}
		if i > 0 && tier.AmountUSD <= tiers[i-1].AmountUSD {
			return fmt.Errorf("tier amounts must be strictly ascending: %.2f after %.2f", tier.AmountUSD, tiers[i-1].AmountUSD)
		}
		msg := strings.TrimSpace(tier.PopupMessage)
		if msg == "" {
			return fmt.Errorf("tier %d: popup message cannot be empty", i)
		}
		if len([]rune(tier.PopupMessage)) > MaxPopupMessageLength {
			return fmt.Errorf("tier %d: popup message exceeds %d characters", i, MaxPopupMessageLength)
		}
		if tier.DurationMS < MinDurationMS || tier.DurationMS > MaxDurationMS {
			return fmt.Errorf("tier %d: duration must be between %d and %d ms, got %d", i, MinDurationMS, MaxDurationMS, tier.DurationMS)
		}
	}
	return nil
}

// MatchTier returns the first tier whose amount differs from amountUSD by
// strictly less than tolerance, or nil. Tiers are ascending and unique, so
// with sane gaps at most one tier can match; first match is the tie-break.
func (s *Streamer) MatchTier(amountUSD, tolerance float64) *DonationTier {
	for i := range s.DonationTiers {
		if math.Abs(s.DonationTiers[i].AmountUSD-amountUSD) < tolerance {
			return &s.DonationTiers[i]
		}
	}
	return nil
}

// TierAmounts lists the price points of all tiers, in tier order.
func (s *Streamer) TierAmounts() []float64 {
	amounts := make([]float64, 0, len(s.DonationTiers))
	for _, tier := range s.DonationTiers {
		amounts = append(amounts, tier.AmountUSD)
	}
	return amounts
}
