package contacts

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/x31a/acrobits-websvc/internal/apierror"
)

// Outcome is the result of a conditional fetch.
type Outcome struct {
	// NotModified means the client copy is current: answer 304 with no body.
	NotModified bool
	// LastModified is the Last-Modified header to send with a full payload,
	// empty when none applies.
	LastModified string
}

// Negotiate compares the client's If-Modified-Since header with the
// snapshot's LastModified. An unparseable client header counts as absent; an
// unparseable snapshot marker is a server error.
func Negotiate(ifModifiedSince, lastModified string) (Outcome, error) {
	if lastModified == "" {
		return Outcome{}, nil
	}
	modified, err := ParseDate(lastModified)
	if err != nil {
		return Outcome{}, apierror.ServerError("invalid contacts last-modified date", err)
	}

	full := Outcome{LastModified: lastModified}
	if ifModifiedSince == "" {
		return full, nil
	}
	since, err := ParseDate(ifModifiedSince)
	if err != nil {
		return full, nil
	}
	if !since.Before(modified) {
		return Outcome{NotModified: true}, nil
	}
	return full, nil
}

// ParseDate parses an RFC 5322 date, also accepting the obsolete HTTP-date
// forms (RFC 850 and ANSI C asctime).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := mail.ParseDate(s)
	if err == nil {
		return t, nil
	}
	if t, httpErr := http.ParseTime(s); httpErr == nil {
		return t, nil
	}
	return time.Time{}, err
}
