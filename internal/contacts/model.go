package contacts

import (
	"context"

	"github.com/x31a/acrobits-websvc/internal/account"
)

// EntryType is the kind of address a contact entry holds.
type EntryType string

const (
	EntryTel   EntryType = "tel"
	EntryEmail EntryType = "email"
	EntryURL   EntryType = "url"
)

// Valid reports whether t is one of the types the client understands.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTel, EntryEmail, EntryURL:
		return true
	}
	return false
}

// Entry is one dialable or clickable address of a contact, in display order.
type Entry struct {
	EntryID string    `json:"entryId"`
	Type    EntryType `json:"type"`
	Label   *string   `json:"label,omitempty"`
	URI     string    `json:"uri"`
}

// Contact is a directory record. Nil fields are left out of the payload.
type Contact struct {
	ContactID     string  `json:"contactId"`
	DisplayName   string  `json:"displayName"`
	Checksum      *string `json:"checksum,omitempty"`
	FirstName     *string `json:"fname,omitempty"`
	MiddleName    *string `json:"mname,omitempty"`
	LastName      *string `json:"lname,omitempty"`
	FirstPhonetic *string `json:"fnamePhonetic,omitempty"`
	MidPhonetic   *string `json:"mnamePhonetic,omitempty"`
	LastPhonetic  *string `json:"lnamePhonetic,omitempty"`
	Nickname      *string `json:"nick,omitempty"`
	NamePrefix    *string `json:"namePrefix,omitempty"`
	NameSuffix    *string `json:"nameSuffix,omitempty"`
	Company       *string `json:"company,omitempty"`
	Department    *string `json:"departmentName,omitempty"`
	JobTitle      *string `json:"jobTitle,omitempty"`
	Birthday      *string `json:"birthday,omitempty"`
	Street        *string `json:"street,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Zip           *string `json:"zip,omitempty"`
	Country       *string `json:"country,omitempty"`
	CountryCode   *string `json:"countryCode,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Entries       []Entry `json:"contactEntries"`
	Avatar        *string `json:"avatar,omitempty"`
	LargeAvatar   *string `json:"largeAvatar,omitempty"`
}

// Snapshot is the full contact list as of LastModified, an RFC 5322 date.
// An empty LastModified disables conditional requests.
type Snapshot struct {
	Contacts     []Contact
	LastModified string
}

// Params carry the account and the client's cached freshness marker, which
// collaborators may use to skip expensive work.
type Params struct {
	Account         account.Params
	IfModifiedSince string
}

// Fetcher produces the contact snapshot for an account.
type Fetcher interface {
	FetchContacts(ctx context.Context, params Params) (Snapshot, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, params Params) (Snapshot, error)

// FetchContacts calls f.
func (f FetcherFunc) FetchContacts(ctx context.Context, params Params) (Snapshot, error) {
	return f(ctx, params)
}

// Response is the web contacts wire shape.
type Response struct {
	Contacts []Contact `json:"contacts"`
}
