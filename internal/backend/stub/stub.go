// Package stub is the placeholder collaborator: every lookup answers 501
// until an integrator plugs in a real backend.
package stub

import (
	"context"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/balance"
	"github.com/x31a/acrobits-websvc/internal/contacts"
	"github.com/x31a/acrobits-websvc/internal/rate"
)

// Backend implements balance.Fetcher, rate.Fetcher and contacts.Fetcher.
type Backend struct{}

// New returns the stub backend.
func New() Backend {
	return Backend{}
}

func (Backend) FetchBalance(context.Context, account.Params) (balance.Balance, error) {
	return balance.Balance{}, apierror.ErrNotImplemented
}

func (Backend) FetchRate(context.Context, rate.Params) (rate.Rate, error) {
	return rate.Rate{}, apierror.ErrNotImplemented
}

func (Backend) FetchContacts(context.Context, contacts.Params) (contacts.Snapshot, error) {
	return contacts.Snapshot{}, apierror.ErrNotImplemented
}

var (
	_ balance.Fetcher  = Backend{}
	_ rate.Fetcher     = Backend{}
	_ contacts.Fetcher = Backend{}
)
