package services

import (
	"errors"
	"fmt"

	"github.com/corebank/ledger/internal/money"
)

// Operation errors. All are terminal for the operation that raised them;
// the engine never retries internally and never commits after one of these.
var (
	// ErrAccountNotFound is returned when the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount covers non-positive and malformed operation amounts.
	ErrInvalidAmount = money.ErrInvalidAmount

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// take the source balance below zero. Nothing is mutated or logged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelfTransfer is returned for a transfer whose source and
	// destination are the same account, before any lock is taken.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrAccountHasBalance blocks deletion of an account whose balance is
	// not zero.
	ErrAccountHasBalance = errors.New("account balance must be zero before deletion")

	// ErrInvalidPageRequest is returned for out-of-range pagination or an
	// unknown sort key/direction.
	ErrInvalidPageRequest = errors.New("invalid page request")

	// ErrStorageUnavailable wraps backing-store faults. The operation's
	// transaction is rolled back, so either all of its effects are visible
	// or none are.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageErr wraps an unexpected driver error into ErrStorageUnavailable,
// keeping the failing step in the message.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
