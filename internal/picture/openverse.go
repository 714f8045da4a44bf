package picture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultOpenverseBaseURL = "https://api.openverse.org"

// OpenverseProvider searches the Openverse image catalog. No API key is
// required for anonymous, rate-limited access.
type OpenverseProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenverseProvider creates a provider against the public Openverse
// API. Pass an empty baseURL to use the default endpoint.
func NewOpenverseProvider(baseURL string) *OpenverseProvider {
	if baseURL == "" {
		baseURL = defaultOpenverseBaseURL
	}
	return &OpenverseProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *OpenverseProvider) Name() string { return "openverse" }

// searchResponse mirrors the JSON returned by GET /v1/images/.
type openverseResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
		Tags  []struct {
			Name string `json:"name"`
		} `json:"tags"`
	} `json:"results"`
}

// Search queries Openverse for photographs matching the query.
func (p *OpenverseProvider) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page_size", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/images/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openverse search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openverse search: unexpected status %d", resp.StatusCode)
	}

	var body openverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding openverse response: %w", err)
	}

	results := make([]SearchResult, 0, len(body.Results))
	for _, r := range body.Results {
		if r.URL == "" {
			continue
		}
		desc := r.Title
		for _, t := range r.Tags {
			desc += " " + t.Name
		}
		results = append(results, SearchResult{ImageURL: r.URL, Description: desc})
	}
	return results, nil
}
