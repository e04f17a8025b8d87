package balance

import (
	"context"

	"github.com/x31a/acrobits-websvc/internal/account"
)

// Balance is a collaborator's answer for one balance request. An empty
// Currency selects the configured default.
type Balance struct {
	Amount   float64
	Currency string
}

// Fetcher looks up the balance of the account identified by params.
type Fetcher interface {
	FetchBalance(ctx context.Context, params account.Params) (Balance, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, params account.Params) (Balance, error)

// FetchBalance calls f.
func (f FetcherFunc) FetchBalance(ctx context.Context, params account.Params) (Balance, error) {
	return f(ctx, params)
}

// Response is the balance checker wire shape.
type Response struct {
	BalanceString string  `json:"balanceString"`
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency"`
}
