// ABOUTME: User management operations against the admin API
// ABOUTME: List, create, delete, bulk delete, and training text updates

package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// UserRecord is one user row as returned by GET /api/admin/users.
// CreatedAt is the backend's ISO 8601 timestamp, kept verbatim;
// formatting happens at display time.
type UserRecord struct {
	Name          string `json:"name"`
	Password      string `json:"password"`
	CreatedAt     string `json:"created_at"`
	Modifications int    `json:"modifications"`
}

// CreateUserRequest is the body for POST /api/admin/create-user. Text is
// the initial training text the backend embeds for the new user.
type CreateUserRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	Text         string `json:"text"`
	Organization string `json:"organization"`
}

// ListUsers fetches the full roster for an organization.
func (c *Client) ListUsers(ctx context.Context, organization string) ([]UserRecord, error) {
	var resp struct {
		Users []UserRecord `json:"users"`
	}
	query := url.Values{"organization": {organization}}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", query, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ListUserNames fetches just the user names for an organization. Cheaper
// than ListUsers for views that only need a picker.
func (c *Client) ListUserNames(ctx context.Context, organization string) ([]string, error) {
	var resp struct {
		Names []string `json:"names"`
	}
	query := url.Values{"organization": {organization}}
	if err := c.do(ctx, http.MethodGet, "/api/users/names", query, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.Names, nil
}

// CreateUser creates a user and embeds their initial training text.
// The backend answers 201 on success; anything else is an error.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*UserRecord, error) {
	var created UserRecord
	if err := c.do(ctx, http.MethodPost, "/api/admin/create-user", nil, req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteUser removes one user from an organization.
func (c *Client) DeleteUser(ctx context.Context, name, organization string) error {
	query := url.Values{"organization": {organization}}
	return c.do(ctx, http.MethodDelete, "/api/admin/delete-user/"+url.PathEscape(name), query, nil, http.StatusOK, nil)
}

// DeleteAllUsers removes every user in an organization. Callers are
// responsible for the typed confirmation step before invoking this.
func (c *Client) DeleteAllUsers(ctx context.Context, organization string) error {
	query := url.Values{"organization": {organization}}
	return c.do(ctx, http.MethodDelete, "/api/admin/delete-all-users", query, nil, http.StatusOK, nil)
}

// UpdateTrainingText replaces a user's training text, triggering a
// re-embed server side.
func (c *Client) UpdateTrainingText(ctx context.Context, name, text string) error {
	body := struct {
		Text string `json:"text"`
	}{Text: text}
	return c.do(ctx, http.MethodPut, "/api/admin/modify-user-embeddings/"+url.PathEscape(name), nil, body, http.StatusOK, nil)
}
