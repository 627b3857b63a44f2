package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var walletAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidationService checks and sanitizes donor-supplied input.
type ValidationService struct {
	minDonationUSD float64
	maxDonationUSD float64
}

func NewValidationService(minDonationUSD, maxDonationUSD float64) *ValidationService {
	return &ValidationService{
		minDonationUSD: minDonationUSD,
		maxDonationUSD: maxDonationUSD,
	}
}

// ValidateWalletAddress reports whether address has the canonical Ethereum
// shape: 0x followed by 40 hex digits. Shape only, no checksum.
func (v *ValidationService) ValidateWalletAddress(address string) bool {
	return walletAddressRe.MatchString(address)
}

// SanitizeMessage strips all markup from message, truncates to maxLength
// characters and trims surrounding whitespace. A message that is empty after
// cleaning comes back as nil, not as an empty string.
func (v *ValidationService) SanitizeMessage(message *string, maxLength int) *string {
	if message == nil || strings.TrimSpace(*message) == "" {
		return nil
	}

	clean := stripMarkup(*message)

	runes := []rune(clean)
	if len(runes) > maxLength {
		clean = string(runes[:maxLength])
	}

	clean = strings.TrimSpace(clean)
	if clean == "" {
		return nil
	}
	return &clean
}

// ValidateAmountRange checks min <= amount <= max, both bounds inclusive.
// On failure the message names the violated bound.
func (v *ValidationService) ValidateAmountRange(amountUSD float64) (bool, string) {
	if amountUSD < v.minDonationUSD {
		return false, fmt.Sprintf("Donation amount must be at least $%.2f", v.minDonationUSD)
	}
	if amountUSD > v.maxDonationUSD {
		return false, fmt.Sprintf("Donation amount cannot exceed $%.2f", v.maxDonationUSD)
	}
	return true, ""
}

// ValidateTierMatch returns the index of the first tier amount within
// tolerance of amountUSD, or -1. The comparison is a strict less-than on the
// absolute difference.
func (v *ValidationService) ValidateTierMatch(amountUSD float64, tierAmounts []float64, tolerance float64) (bool, int) {
	for i, tierAmount := range tierAmounts {
		diff := tierAmount - amountUSD
		if diff < 0 {
			diff = -diff
		}
		if diff < tolerance {
			return true, i
		}
	}
	return false, -1
}

// stripMarkup parses s as HTML and keeps only text content. Script and style
// payloads are markup-borne code, not user text, so they go with the tags.
func stripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
