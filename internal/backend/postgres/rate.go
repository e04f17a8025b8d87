package postgres

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"

	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/rate"
)

const rateQuery = `
        SELECT call_price, call_specification, message_price, currency
        FROM rates
        WHERE $1 LIKE prefix || '%'
        ORDER BY length(prefix) DESC
        LIMIT 1`

// FetchRate returns the rate of the longest prefix matching the destination.
func (b *Backend) FetchRate(ctx context.Context, params rate.Params) (rate.Rate, error) {
	if _, err := b.authenticate(ctx, params.Account); err != nil {
		return rate.Rate{}, err
	}
	dest := Destination(params)
	if dest == "" {
		return rate.Rate{}, apierror.ErrNotFound
	}

	var (
		callPrice    *float64
		callSpec     string
		messagePrice *float64
		currency     string
	)
	err := b.db.QueryRow(ctx, rateQuery, dest).Scan(&callPrice, &callSpec, &messagePrice, &currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rate.Rate{}, apierror.ErrNotFound
		}
		return rate.Rate{}, dbError("lookup rate", err)
	}

	r := rate.Rate{Message: messagePrice, Currency: currency}
	if callPrice != nil {
		r.Call = &rate.Call{Price: *callPrice, Specification: callSpec}
	}
	return r, nil
}

// Destination reduces the request to the string matched against rate
// prefixes: the digits of targetNumber, or the user part of smartUri.
func Destination(params rate.Params) string {
	if params.TargetNumber != "" {
		return strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, params.TargetNumber)
	}

	user := params.SmartURI
	if i := strings.IndexByte(user, ':'); i >= 0 {
		user = user[i+1:]
	}
	if i := strings.IndexAny(user, "@;?"); i >= 0 {
		user = user[:i]
	}
	return strings.TrimPrefix(user, "+")
}
