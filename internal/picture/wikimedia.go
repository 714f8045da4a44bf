package picture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultWikimediaBaseURL = "https://commons.wikimedia.org"

// WikimediaProvider searches Wikimedia Commons for images. Used as the
// secondary provider when the primary returns nothing usable.
type WikimediaProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewWikimediaProvider creates a provider against the Commons API. Pass
// an empty baseURL to use the default endpoint.
func NewWikimediaProvider(baseURL string) *WikimediaProvider {
	if baseURL == "" {
		baseURL = defaultWikimediaBaseURL
	}
	return &WikimediaProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *WikimediaProvider) Name() string { return "wikimedia" }

// wikimediaResponse mirrors the query/imageinfo shape of the Commons API.
type wikimediaResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// Search queries Commons file pages matching the query and returns
// their direct image URLs.
func (p *WikimediaProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("generator", "search")
	q.Set("gsrsearch", query)
	q.Set("gsrnamespace", "6") // File: pages only
	q.Set("gsrlimit", "10")
	q.Set("prop", "imageinfo")
	q.Set("iiprop", "url")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/w/api.php?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikimedia search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikimedia search: unexpected status %d", resp.StatusCode)
	}

	var body wikimediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding wikimedia response: %w", err)
	}

	var results []SearchResult
	for _, page := range body.Query.Pages {
		if len(page.ImageInfo) == 0 || page.ImageInfo[0].URL == "" {
			continue
		}
		results = append(results, SearchResult{
			ImageURL:    page.ImageInfo[0].URL,
			Description: page.Title,
		})
	}
	return results, nil
}
