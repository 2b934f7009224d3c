// ABOUTME: Organization listing operation
// ABOUTME: Organizations scope every other user-facing operation

package gateway

import (
	"context"
	"net/http"
)

// ListOrganizations returns the organization keys the backend serves.
// Fetched once at startup; the console never mutates organizations.
func (c *Client) ListOrganizations(ctx context.Context) ([]string, error) {
	var resp struct {
		Organizations []string `json:"organizations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/organizations", nil, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.Organizations, nil
}
