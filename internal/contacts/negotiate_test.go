package contacts

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x31a/acrobits-websvc/internal/apierror"
)

const snapshotDate = "Tue, 01 Aug 2023 00:00:00 GMT"

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name            string
		ifModifiedSince string
		lastModified    string
		want            Outcome
	}{
		{"no snapshot date, no header", "", "", Outcome{}},
		{"no snapshot date ignores header", snapshotDate, "", Outcome{}},
		{"no header sets last-modified", "", snapshotDate, Outcome{LastModified: snapshotDate}},
		{"equal header is not modified", snapshotDate, snapshotDate, Outcome{NotModified: true}},
		{"later header is not modified", "Wed, 02 Aug 2023 10:00:00 GMT", snapshotDate, Outcome{NotModified: true}},
		{"earlier header returns payload", "Mon, 31 Jul 2023 23:59:59 GMT", snapshotDate, Outcome{LastModified: snapshotDate}},
		{"garbage header counts as absent", "yesterday", snapshotDate, Outcome{LastModified: snapshotDate}},
		{"offset zones compare by instant", "Tue, 01 Aug 2023 02:00:00 +0200", snapshotDate, Outcome{NotModified: true}},
		{"rfc850 header", "Tuesday, 01-Aug-23 00:00:00 GMT", snapshotDate, Outcome{NotModified: true}},
		{"asctime header", "Mon Jul 31 12:00:00 2023", snapshotDate, Outcome{LastModified: snapshotDate}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Negotiate(tt.ifModifiedSince, tt.lastModified)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiateInvalidSnapshotDate(t *testing.T) {
	for _, header := range []string{"", snapshotDate} {
		_, err := Negotiate(header, "not a date")
		require.Error(t, err)

		var apiErr *apierror.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	}
}

func TestNegotiateKeepsSnapshotValueVerbatim(t *testing.T) {
	const odd = "Tue, 1 Aug 2023 00:00:00 +0000"
	got, err := Negotiate("", odd)
	require.NoError(t, err)
	assert.Equal(t, odd, got.LastModified)
}
