package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	webSearchToolName = "web_search"
	serpAPIEndpoint   = "https://serpapi.com/search.json"
	maxSearchResults  = 5
	serpAPITimeout    = 10 * time.Second
)

// SearchClient wraps the SerpAPI Google engine as a built-in tool, covering
// the web-search capability the MCP servers do not provide.
type SearchClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewSearchClient(apiKey string) *SearchClient {
	return &SearchClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: serpAPITimeout},
	}
}

func (s *SearchClient) Enabled() bool {
	return s != nil && s.apiKey != ""
}

type searchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search runs one query and returns a compact JSON list of the top organic
// results, ready to be fed back to the model.
func (s *SearchClient) Search(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("empty search query")
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	var payload struct {
		OrganicResults []searchResult `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("serpapi decode: %w", err)
	}

	results := payload.OrganicResults
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	out, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
