// Package postgres is a reference collaborator that serves balances, rates
// and contacts from PostgreSQL. Accounts authenticate with a bcrypt hash of
// the softphone password.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/balance"
	"github.com/x31a/acrobits-websvc/internal/contacts"
	"github.com/x31a/acrobits-websvc/internal/rate"
)

//go:embed schema.sql
var schema string

// Backend implements balance.Fetcher, rate.Fetcher and contacts.Fetcher on
// top of a pgx pool.
type Backend struct {
	db *pgxpool.Pool
}

// New builds a Postgres-backed collaborator.
func New(db *pgxpool.Pool) *Backend {
	return &Backend{db: db}
}

// Migrate creates the tables the backend reads from. It is idempotent.
func (b *Backend) Migrate(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

type accountRow struct {
	username     string
	passwordHash string
	balance      float64
	currency     string
}

// authenticate loads the account and checks the password. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (b *Backend) authenticate(ctx context.Context, params account.Params) (accountRow, error) {
	if params.Username == "" {
		return accountRow{}, apierror.ErrForbidden
	}
	var row accountRow
	err := b.db.QueryRow(ctx,
		`SELECT username, password_hash, balance, currency FROM accounts WHERE username = $1`,
		params.Username,
	).Scan(&row.username, &row.passwordHash, &row.balance, &row.currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accountRow{}, apierror.ErrForbidden
		}
		return accountRow{}, dbError("load account", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.passwordHash), []byte(params.Password)); err != nil {
		return accountRow{}, apierror.ErrForbidden
	}
	return row, nil
}

// dbError marks connectivity failures as unavailable so the client sees a
// 503 rather than a 500.
func dbError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	var connectErr *pgconn.ConnectError
	if pgconn.Timeout(err) || errors.As(err, &connectErr) {
		return fmt.Errorf("%s: %w: %v", op, apierror.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var (
	_ balance.Fetcher  = (*Backend)(nil)
	_ rate.Fetcher     = (*Backend)(nil)
	_ contacts.Fetcher = (*Backend)(nil)
)
