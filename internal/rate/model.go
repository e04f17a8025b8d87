package rate

import (
	"context"

	"github.com/x31a/acrobits-websvc/internal/account"
)

// Params identify the destination whose rate the client wants to display.
// Exactly one of TargetNumber and SmartURI is used; TargetNumber wins.
type Params struct {
	Account      account.Params
	TargetNumber string
	SmartURI     string
}

// Call is the per-call price and its billing unit, e.g. "min.".
type Call struct {
	Price         float64
	Specification string
}

// Rate is a collaborator's answer for one rate request. Nil Call or Message
// render as empty strings.
type Rate struct {
	Call     *Call
	Message  *float64
	Currency string
}

// Fetcher computes the rate for a destination.
type Fetcher interface {
	FetchRate(ctx context.Context, params Params) (Rate, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, params Params) (Rate, error)

// FetchRate calls f.
func (f FetcherFunc) FetchRate(ctx context.Context, params Params) (Rate, error) {
	return f(ctx, params)
}
