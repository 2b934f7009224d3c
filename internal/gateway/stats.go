// ABOUTME: Embedding storage statistics retrieval
// ABOUTME: Splits the per-organization map from the overall total entry

package gateway

import (
	"context"
	"net/http"
	"sort"
)

// OrgStats is embedding storage usage for one organization.
type OrgStats struct {
	TotalSizeMB     float64 `json:"total_size_mb"`
	TotalEmbeddings int     `json:"total_embeddings"`
}

// EmbeddingStats is the full stats payload: per-organization usage plus
// the overall total the backend reports under the "total" key.
type EmbeddingStats struct {
	Organizations map[string]OrgStats
	Total         OrgStats
}

// OrgNames returns the organization keys in sorted order for stable
// display.
func (s *EmbeddingStats) OrgNames() []string {
	names := make([]string, 0, len(s.Organizations))
	for name := range s.Organizations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetEmbeddingStats fetches embedding storage usage across all
// organizations.
func (c *Client) GetEmbeddingStats(ctx context.Context) (*EmbeddingStats, error) {
	var raw map[string]OrgStats
	if err := c.do(ctx, http.MethodGet, "/api/embedding-stats", nil, nil, http.StatusOK, &raw); err != nil {
		return nil, err
	}

	stats := &EmbeddingStats{Organizations: make(map[string]OrgStats, len(raw))}
	for name, entry := range raw {
		if name == "total" {
			stats.Total = entry
			continue
		}
		stats.Organizations[name] = entry
	}
	return stats, nil
}
