package services

import (
	"errors"
	"fmt"
)

var (
	ErrStreamerNotFound = errors.New("streamer not found")
	ErrDonationNotFound = errors.New("donation not found")

	// ErrWalletTaken: a streamer with this wallet address already exists.
	ErrWalletTaken = errors.New("wallet address is already registered")

	// ErrStreamerWalletInvalid: a stored streamer carries a malformed wallet
	// address. A data integrity fault on our side, not a caller error.
	ErrStreamerWalletInvalid = errors.New("streamer wallet address is invalid")
)

// ValidationError carries a human-readable reason for rejecting input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
