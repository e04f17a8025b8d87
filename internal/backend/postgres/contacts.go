package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/x31a/acrobits-websvc/internal/contacts"
)

const contactsQuery = `
        SELECT contact_id, display_name, checksum,
               fname, mname, lname, fname_phonetic, mname_phonetic, lname_phonetic,
               nick, name_prefix, name_suffix, company, department_name, job_title,
               birthday, street, city, state, zip, country, country_code, notes,
               avatar, large_avatar, entries, updated_at
        FROM contacts
        WHERE account = $1
        ORDER BY position, contact_id`

// FetchContacts returns every contact of the authenticated account. The
// snapshot is stamped with the newest updated_at; an empty list carries no
// date, so clients never get a 304 for it.
func (b *Backend) FetchContacts(ctx context.Context, params contacts.Params) (contacts.Snapshot, error) {
	row, err := b.authenticate(ctx, params.Account)
	if err != nil {
		return contacts.Snapshot{}, err
	}

	rows, err := b.db.Query(ctx, contactsQuery, row.username)
	if err != nil {
		return contacts.Snapshot{}, dbError("query contacts", err)
	}
	defer rows.Close()

	var (
		out    []contacts.Contact
		newest time.Time
	)
	for rows.Next() {
		var (
			c         contacts.Contact
			entries   []byte
			updatedAt time.Time
		)
		if err := rows.Scan(
			&c.ContactID, &c.DisplayName, &c.Checksum,
			&c.FirstName, &c.MiddleName, &c.LastName, &c.FirstPhonetic, &c.MidPhonetic, &c.LastPhonetic,
			&c.Nickname, &c.NamePrefix, &c.NameSuffix, &c.Company, &c.Department, &c.JobTitle,
			&c.Birthday, &c.Street, &c.City, &c.State, &c.Zip, &c.Country, &c.CountryCode, &c.Notes,
			&c.Avatar, &c.LargeAvatar, &entries, &updatedAt,
		); err != nil {
			return contacts.Snapshot{}, dbError("scan contact", err)
		}
		if err := json.Unmarshal(entries, &c.Entries); err != nil {
			return contacts.Snapshot{}, fmt.Errorf("decode entries of contact %q: %w", c.ContactID, err)
		}
		if updatedAt.After(newest) {
			newest = updatedAt
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return contacts.Snapshot{}, dbError("iterate contacts", err)
	}

	snapshot := contacts.Snapshot{Contacts: out}
	if !newest.IsZero() {
		snapshot.LastModified = newest.UTC().Format(http.TimeFormat)
	}
	return snapshot, nil
}
