// Package hltv contains the page-specific extraction routines. Each is a
// stateless transform from a parsed document to a structured record and
// consumes only the fetcher's Fetch operation and the document-query
// surface. A query miss on an otherwise-successful fetch surfaces as a
// LAYOUT_CHANGED error, never as partial data.
package hltv

import (
	"strings"

	"github.com/akimerslys/hltv-go/config"
	"github.com/akimerslys/hltv-go/fetcher"
	"github.com/akimerslys/hltv-go/models"
)

const baseURL = "https://www.hltv.org"

// Client bundles the resilient fetcher with the extraction routines.
type Client struct {
	fetcher *fetcher.Fetcher
}

// New creates a Client from cfg; nil loads configuration from the environment.
func New(cfg *config.Config) (*Client, error) {
	f, err := fetcher.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{fetcher: f}, nil
}

// NewWithFetcher wraps an existing fetcher.
func NewWithFetcher(f *fetcher.Fetcher) *Client {
	return &Client{fetcher: f}
}

// Reconfigure applies a partial configuration update to the underlying fetcher.
func (c *Client) Reconfigure(opts config.Options) error {
	return c.fetcher.Reconfigure(opts)
}

// layoutErr marks a document-query miss: the page fetched fine but no
// longer matches the expected markup.
func layoutErr(what string) error {
	return models.NewFetchError(models.ErrCodeLayoutChanged, what, nil)
}

// slug converts a display name into its URL path form.
func slug(s string) string {
	return strings.ReplaceAll(s, " ", "-")
}

// hrefPart returns the idx-th slash-separated segment of href. Negative idx
// counts from the end.
func hrefPart(href string, idx int) string {
	parts := strings.Split(href, "/")
	if idx < 0 {
		idx += len(parts)
	}
	if idx < 0 || idx >= len(parts) {
		return ""
	}
	return parts[idx]
}
