package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jumpaku/accountd/internal/dbx"
)

// pgUniqueViolation is the Postgres error code for a unique-constraint
// violation (class 23: integrity constraint violation).
const pgUniqueViolation = "23505"

// PostgresRepository runs account queries against a dbx.DBTX handle, so the
// same implementation serves both pooled and transactional access.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// classify translates driver errors into the repository sentinels once, at
// the storage-adapter boundary. Anything unrecognized passes through wrapped
// and becomes a DatabaseError in the model.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", ErrLoginIDTaken, err)
	}
	return err
}

func (r *PostgresRepository) Insert(ctx context.Context, account *Account) (int64, error) {
	query := `
		INSERT INTO accounts (login_id, password_hash, display_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		account.LoginID, account.PasswordHash, account.DisplayName, string(account.Status)).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}

	return id, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, accountID int64) (*Account, error) {
	query := `
		SELECT account_id, login_id, password_hash, display_name, status
		FROM accounts
		WHERE account_id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, accountID))
}

func (r *PostgresRepository) FindByLoginID(ctx context.Context, loginID string) (*Account, error) {
	query := `
		SELECT account_id, login_id, password_hash, display_name, status
		FROM accounts
		WHERE login_id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, loginID))
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, accountID int64, status Status) error {
	query := `UPDATE accounts SET status = $1 WHERE account_id = $2`

	if _, err := r.db.ExecContext(ctx, query, string(status), accountID); err != nil {
		return classify(err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*Account, error) {
	account := &Account{}
	var status string
	err := row.Scan(&account.AccountID, &account.LoginID, &account.PasswordHash, &account.DisplayName, &status)
	if err != nil {
		return nil, classify(err)
	}
	account.Status = Status(status)
	return account, nil
}

// PostgresStore opens one transaction per InTx call and hands fn a
// repository bound to it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewPostgresRepository(tx))
	})
}
