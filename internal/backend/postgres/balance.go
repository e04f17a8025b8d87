package postgres

import (
	"context"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/balance"
)

// FetchBalance returns the stored balance of the authenticated account.
func (b *Backend) FetchBalance(ctx context.Context, params account.Params) (balance.Balance, error) {
	row, err := b.authenticate(ctx, params)
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.Balance{Amount: row.balance, Currency: row.currency}, nil
}
