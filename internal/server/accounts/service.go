package accounts

import (
	"context"
	"crypto/sha512"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jumpaku/accountd/internal/apperr"
	"github.com/jumpaku/accountd/internal/result"
	"github.com/jumpaku/accountd/internal/server/auth"
)

// passwordHashCost is the bcrypt cost factor. A tunable constant, not part of
// the API contract.
const passwordHashCost = 10

// passwordDigest pre-hashes the password with SHA-512 before bcrypt. bcrypt
// reads at most 72 bytes of input while validation admits passwords up to 128
// characters; the 64-byte digest keeps the full password significant.
func passwordDigest(password string) []byte {
	sum := sha512.Sum512([]byte(password))
	return sum[:]
}

// Service is the entry point to the accounts model. Operations run through
// Exec so that every validate/read/check/write sequence happens inside one
// storage transaction. The codec and its signing secret are immutable
// process-wide state initialized before the first request.
type Service struct {
	store Store
	codec *auth.Codec
}

func NewService(store Store, codec *auth.Codec) *Service {
	return &Service{store: store, codec: codec}
}

// errRolledBack signals the store to roll back after the model produced a
// failure Result; the Result itself carries the caller-visible error.
var errRolledBack = errors.New("accounts: rolled back")

// Exec runs op against a Model bound to one transaction. The transaction
// commits only when op returns a success; any failure rolls back, so partial
// writes are never observable. Exec is a package function because Go methods
// cannot introduce type parameters.
func Exec[T any](ctx context.Context, s *Service, op func(ctx context.Context, m *Model) result.Result[T]) result.Result[T] {
	var out result.Result[T]
	err := s.store.InTx(ctx, func(ctx context.Context, repo Repository) error {
		out = op(ctx, &Model{repo: repo, codec: s.codec})
		if out.IsFailure() {
			return errRolledBack
		}
		return nil
	})
	if err != nil && !errors.Is(err, errRolledBack) {
		// Begin/commit failure; out may hold a stale success.
		return result.Failure[T](apperr.Wrap(err, apperr.DatabaseError, "Transaction failed"))
	}
	return out
}

// Model exposes the account operations of one transaction. It is handed to
// the Exec callback and must not outlive it; the repository handle is owned
// exclusively by the enclosing transaction.
type Model struct {
	repo  Repository
	codec *auth.Codec
}

// Create validates all three fields, hashes the password and inserts an OPEN
// account, returning the storage-assigned id. A uniqueness conflict on
// loginId fails with InvalidState whether the conflicting account is OPEN or
// CLOSED; validation failures never reach storage.
func (m *Model) Create(ctx context.Context, params CreateParams) result.Result[int64] {
	if err := validateCreateParams(params); err != nil {
		return result.Failure[int64](err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(params.Password), passwordHashCost)
	if err != nil {
		return result.Failure[int64](apperr.Wrap(err, apperr.ServerError, "Password hashing failed"))
	}

	id, err := m.repo.Insert(ctx, &Account{
		LoginID:      params.LoginID,
		PasswordHash: string(hash),
		DisplayName:  params.DisplayName,
		Status:       StatusOpen,
	})
	if err != nil {
		if errors.Is(err, ErrLoginIDTaken) {
			return result.Failure[int64](apperr.Wrap(err, apperr.InvalidState, "loginId is not available"))
		}
		return result.Failure[int64](storageFailure(err))
	}

	return result.Success(id)
}

// Close transitions the account OPEN -> CLOSED. The transition is one-way:
// closing an already-closed account fails with ForbiddenOperation rather than
// succeeding idempotently, and an unknown id fails with TargetNotFound.
func (m *Model) Close(ctx context.Context, accountID int64) result.Result[result.Void] {
	account, err := m.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return result.Failure[result.Void](apperr.New(apperr.TargetNotFound, "accountId is not found in database"))
		}
		return result.Failure[result.Void](storageFailure(err))
	}
	if account.Status == StatusClosed {
		return result.Failure[result.Void](apperr.New(apperr.ForbiddenOperation, "Account is already closed"))
	}

	if err := m.repo.UpdateStatus(ctx, accountID, StatusClosed); err != nil {
		return result.Failure[result.Void](storageFailure(err))
	}
	return result.Success(result.Void{})
}

// Authenticate resolves loginId and checks the password against the stored
// hash. Unknown and closed loginIds fail with the same message so an
// unauthenticated caller cannot probe account existence; a wrong password on
// a valid open loginId is reported distinctly.
func (m *Model) Authenticate(ctx context.Context, loginID, password string) result.Result[int64] {
	account, err := m.repo.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return result.Failure[int64](apperr.New(apperr.AuthenticationFailed, "loginId is not available"))
		}
		return result.Failure[int64](storageFailure(err))
	}
	if account.Status == StatusClosed {
		return result.Failure[int64](apperr.New(apperr.AuthenticationFailed, "loginId is not available"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), passwordDigest(password)); err != nil {
		return result.Failure[int64](apperr.New(apperr.AuthenticationFailed, "Password mismatch"))
	}

	return result.Success(account.AccountID)
}

// IssueToken mints a token for an existing OPEN account.
func (m *Model) IssueToken(ctx context.Context, accountID int64) result.Result[string] {
	account, err := m.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return result.Failure[string](apperr.New(apperr.AuthenticationFailed, "accountId is not available"))
		}
		return result.Failure[string](storageFailure(err))
	}
	if account.Status == StatusClosed {
		return result.Failure[string](apperr.New(apperr.AuthenticationFailed, "accountId is not available"))
	}

	token, err := m.codec.Issue(account.AccountID)
	if err != nil {
		return result.Failure[string](apperr.Wrap(err, apperr.ServerError, "Token issuance failed"))
	}
	return result.Success(token)
}

// VerifyToken checks the token cryptographically, then re-checks the
// account's current status in storage: a token stays structurally valid after
// its account closes, so status is consulted on every verification.
func (m *Model) VerifyToken(ctx context.Context, token string) result.Result[int64] {
	accountID, err := m.codec.Verify(token)
	if err != nil {
		return result.Failure[int64](apperr.Wrap(err, apperr.AuthenticationFailed, "Invalid JWT token"))
	}

	account, err := m.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return result.Failure[int64](apperr.New(apperr.AuthenticationFailed, "Account is not available"))
		}
		return result.Failure[int64](storageFailure(err))
	}
	if account.Status == StatusClosed {
		return result.Failure[int64](apperr.New(apperr.AuthenticationFailed, "Account is not available"))
	}

	return result.Success(account.AccountID)
}

func storageFailure(err error) *apperr.Error {
	return apperr.Wrap(err, apperr.DatabaseError, "Database operation failed")
}
