package client

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
)

// AssetClient fetches the PDK template PDFs and the shared bold TTF
// font. Successful fetches are cached for the life of the client
// (font globally, templates per POS id); a failed fetch is not cached
// and is retried on next use.
type AssetClient struct {
	httpClient   *http.Client
	fontURL      string
	templateURLs map[string]string
	defaultPOSID string

	mu        sync.Mutex
	fontBytes []byte
	templates map[string][]byte
}

func NewAssetClient(httpClient *http.Client, fontURL string, templateURLs map[string]string, defaultPOSID string) *AssetClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AssetClient{
		httpClient:   httpClient,
		fontURL:      fontURL,
		templateURLs: templateURLs,
		defaultPOSID: defaultPOSID,
		templates:    make(map[string][]byte),
	}
}

// Font returns the shared bold TTF bytes.
func (c *AssetClient) Font(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fontBytes != nil {
		return c.fontBytes, nil
	}

	data, err := c.fetch(ctx, c.fontURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch font: %w", err)
	}
	c.fontBytes = data
	log.Printf("Fetched PDK font (%d bytes)", len(data))
	return data, nil
}

// Template returns the PDK template for a POS id, falling back to the
// default POS when the id is unknown.
func (c *AssetClient) Template(ctx context.Context, posID string) ([]byte, error) {
	url, ok := c.templateURLs[posID]
	if !ok {
		posID = c.defaultPOSID
		url = c.templateURLs[posID]
	}
	if url == "" {
		return nil, fmt.Errorf("no template URL configured for POS %s", posID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.templates[posID]; ok {
		return data, nil
	}

	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template for %s: %w", posID, err)
	}
	c.templates[posID] = data
	log.Printf("Fetched PDK template for %s (%d bytes)", posID, len(data))
	return data, nil
}

func (c *AssetClient) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return data, nil
}
