package contacts

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/apierror"
)

// Handler exposes the web contacts endpoint.
type Handler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewHandler builds a contacts HTTP handler.
func NewHandler(fetcher Fetcher, logger *slog.Logger) *Handler {
	return &Handler{fetcher: fetcher, logger: logger}
}

// Get answers GET {base}/contacts, honouring If-Modified-Since.
func (h *Handler) Get(c *fiber.Ctx) error {
	params := Params{
		Account:         account.FromQuery(c),
		IfModifiedSince: c.Get(fiber.HeaderIfModifiedSince),
	}
	snapshot, err := h.fetcher.FetchContacts(c.UserContext(), params)
	if err != nil {
		return err
	}
	if err := snapshot.Validate(); err != nil {
		return apierror.ServerError("invalid contacts snapshot", err)
	}

	outcome, err := Negotiate(params.IfModifiedSince, snapshot.LastModified)
	if err != nil {
		return err
	}
	if outcome.NotModified {
		h.logger.DebugContext(c.UserContext(), "contacts not modified", slog.String("username", params.Account.Username))
		return c.SendStatus(http.StatusNotModified)
	}
	if outcome.LastModified != "" {
		c.Set(fiber.HeaderLastModified, outcome.LastModified)
	}

	return c.Status(http.StatusOK).JSON(NewResponse(snapshot))
}

// NewResponse copies the snapshot into the wire shape, emitting empty lists
// rather than nulls.
func NewResponse(s Snapshot) Response {
	out := make([]Contact, len(s.Contacts))
	copy(out, s.Contacts)
	for i := range out {
		if out[i].Entries == nil {
			out[i].Entries = []Entry{}
		}
	}
	return Response{Contacts: out}
}

// Validate checks the collaborator contract: known entry types and entry IDs
// unique within each contact.
func (s Snapshot) Validate() error {
	for _, contact := range s.Contacts {
		seen := make(map[string]struct{}, len(contact.Entries))
		for _, entry := range contact.Entries {
			if !entry.Type.Valid() {
				return fmt.Errorf("contact %q: entry %q has unknown type %q", contact.ContactID, entry.EntryID, entry.Type)
			}
			if _, dup := seen[entry.EntryID]; dup {
				return fmt.Errorf("contact %q: duplicate entry id %q", contact.ContactID, entry.EntryID)
			}
			seen[entry.EntryID] = struct{}{}
		}
	}
	return nil
}
