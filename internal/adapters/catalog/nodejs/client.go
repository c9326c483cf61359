// Package nodejs fetches the Node.js release catalog from the upstream
// dist index. The index is structured JSON, so the support policy never
// sees raw CLI text.
package nodejs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bmaertens/upkeep/internal/domain"
	"github.com/bmaertens/upkeep/internal/ports"
)

const DefaultIndexURL = "https://nodejs.org/dist/index.json"

const maxIndexBytes = 8 << 20

type Client struct {
	httpClient *http.Client
	indexURL   string
}

var _ ports.NodeCatalog = (*Client)(nil)

func NewClient(httpClient *http.Client, indexURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}

	return &Client{httpClient: httpClient, indexURL: indexURL}
}

// Releases downloads and decodes the dist index, newest release first, the
// order upstream publishes. Entries with malformed version strings are
// skipped rather than failing the whole catalog.
func (c *Client) Releases(ctx context.Context) ([]domain.Release, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("User-Agent", "upkeep/node-catalog")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxIndexBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read index: %v", domain.ErrCatalogUnavailable, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCatalogUnavailable, response.StatusCode, strings.TrimSpace(string(body)))
	}

	var entries []indexEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode index: %v", domain.ErrCatalogUnavailable, err)
	}

	releases := make([]domain.Release, 0, len(entries))
	for _, entry := range entries {
		version, err := domain.ParseVersion(entry.Version)
		if err != nil {
			continue
		}
		releases = append(releases, domain.Release{
			Version:  version,
			LTSLabel: entry.LTS.Label,
		})
	}

	return releases, nil
}
