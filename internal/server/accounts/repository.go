package accounts

import (
	"context"
	"errors"
)

// Sentinel errors produced by the storage-error classification at the
// repository boundary. The model only ever sees these plus plain driver
// errors it wraps as DatabaseError; no driver-specific type leaks upward.
var (
	// ErrNotFound reports that no account matched the lookup key.
	ErrNotFound = errors.New("account not found")

	// ErrLoginIDTaken reports that an insert hit the unique index on
	// login_id. The conflicting account may be OPEN or CLOSED; closed
	// accounts reserve their loginId permanently.
	ErrLoginIDTaken = errors.New("loginId already exists")
)

// Repository is the per-transaction view of the accounts table.
type Repository interface {
	// Insert persists a new account and returns the storage-assigned id.
	// Returns ErrLoginIDTaken on a login_id uniqueness violation.
	Insert(ctx context.Context, account *Account) (int64, error)

	// FindByID returns the account or ErrNotFound.
	FindByID(ctx context.Context, accountID int64) (*Account, error)

	// FindByLoginID returns the account or ErrNotFound.
	FindByLoginID(ctx context.Context, loginID string) (*Account, error)

	// UpdateStatus sets the account's lifecycle status.
	UpdateStatus(ctx context.Context, accountID int64, status Status) error
}

// Store hands a Repository scoped to one transaction to fn. The transaction
// commits when fn returns nil and rolls back otherwise, so a read-check-write
// sequence inside fn is atomic with respect to concurrent callers.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
