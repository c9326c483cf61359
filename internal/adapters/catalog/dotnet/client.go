// Package dotnet fetches the .NET releases index, the structured document
// Microsoft publishes per release channel.
package dotnet

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

const DefaultIndexURL = "https://builds.dotnet.microsoft.com/dotnet/release-metadata/releases-index.json"

const maxIndexBytes = 4 << 20

type Client struct {
	httpClient *http.Client
	indexURL   string
}

var _ ports.DotnetCatalog = (*Client)(nil)

func NewClient(httpClient *http.Client, indexURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}

	return &Client{httpClient: httpClient, indexURL: indexURL}
}

// Channels downloads and decodes the releases index. Preview and RC SDK
// strings do not parse as plain triples; those channels keep a zero
// LatestSDK and the resolver degrades them with a warning.
func (c *Client) Channels(ctx context.Context) ([]domain.Channel, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("User-Agent", "upkeep/dotnet-catalog")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxIndexBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read releases index: %v", domain.ErrCatalogUnavailable, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCatalogUnavailable, response.StatusCode, strings.TrimSpace(string(body)))
	}

	var index releasesIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("%w: decode releases index: %v", domain.ErrCatalogUnavailable, err)
	}
	if len(index.ReleasesIndex) == 0 {
		return nil, fmt.Errorf("%w: releases index is empty", domain.ErrCatalogUnavailable)
	}

	channels := make([]domain.Channel, 0, len(index.ReleasesIndex))
	for _, entry := range index.ReleasesIndex {
		var latestSDK domain.Version
		if parsed, err := domain.ParseVersion(entry.LatestSDK); err == nil {
			latestSDK = parsed
		}

		channels = append(channels, domain.Channel{
			ChannelVersion: entry.ChannelVersion,
			ReleaseType:    domain.ReleaseType(strings.ToLower(entry.ReleaseType)),
			SupportPhase:   domain.SupportPhase(strings.ToLower(entry.SupportPhase)),
			LatestSDK:      latestSDK,
		})
	}

	return channels, nil
}
