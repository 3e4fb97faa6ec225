package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/notely/pkg/core"
)

// ListNotes fetches one page of notes matching params.
func (c *Client) ListNotes(ctx context.Context, token string, params core.ListParams) (core.NotePage, error) {
	params = params.WithDefaults()

	q := url.Values{}
	q.Set("search", params.Search)
	q.Set("ordering", params.Ordering)
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("page_size", strconv.Itoa(params.PageSize))

	page, err := call[core.NotePage](ctx, c, request{
		op:      "list_notes",
		message: MsgListNotes,
		method:  http.MethodGet,
		path:    "/notes/?" + q.Encode(),
		token:   token,
	})
	if err != nil {
		return core.NotePage{}, err
	}
	if page.Results == nil {
		page.Results = []core.Note{}
	}
	return page, nil
}

// GetNote fetches a single note.
func (c *Client) GetNote(ctx context.Context, token string, id core.ID) (core.Note, error) {
	return call[core.Note](ctx, c, request{
		op:      "get_note",
		message: MsgGetNote,
		method:  http.MethodGet,
		path:    notePath(id),
		token:   token,
	})
}

// CreateNote creates a note and returns the server's copy.
func (c *Client) CreateNote(ctx context.Context, token string, in core.NoteInput) (core.Note, error) {
	return call[core.Note](ctx, c, request{
		op:      "create_note",
		message: MsgCreateNote,
		method:  http.MethodPost,
		path:    "/notes/",
		token:   token,
		body:    in,
	})
}

// UpdateNote replaces title and content of a note.
func (c *Client) UpdateNote(ctx context.Context, token string, id core.ID, in core.NoteInput) (core.Note, error) {
	return call[core.Note](ctx, c, request{
		op:      "update_note",
		message: MsgUpdateNote,
		method:  http.MethodPut,
		path:    notePath(id),
		token:   token,
		body:    in,
	})
}

// DeleteNote removes a note. The response body is ignored.
func (c *Client) DeleteNote(ctx context.Context, token string, id core.ID) error {
	return c.do(ctx, request{
		op:      "delete_note",
		message: MsgDeleteNote,
		method:  http.MethodDelete,
		path:    notePath(id),
		token:   token,
	}, nil)
}

func notePath(id core.ID) string {
	return "/notes/" + url.PathEscape(id.String()) + "/"
}
