package api

import (
	"context"
	"net/http"
)

// AddNote posts a note.
func (c *Client) AddNote(ctx context.Context, data any) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, "/mood/notes", data)
}

// GetNotes lists the user's notes.
func (c *Client) GetNotes(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/mood/notes"})
}

// DeleteNote deletes a note by id.
func (c *Client) DeleteNote(ctx context.Context, id string) (*Response, error) {
	path, err := idPath("/notes/", id, "")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, call{method: http.MethodDelete, path: path})
}
