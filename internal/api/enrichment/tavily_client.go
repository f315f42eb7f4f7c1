package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wanderhost/concierge-agent/config"
	"github.com/wanderhost/concierge-agent/internal/types"
)

var _ SearchClient = (*TavilyClient)(nil)

// SearchClient performs best-effort free-text searches against an external
// backend. Implementations never propagate transport failures: they log and
// return an empty result set so a search outage degrades the response instead
// of failing it.
type SearchClient interface {
	Search(ctx context.Context, query string) []types.SearchResult
}

// TavilyClient queries the Tavily search API.
type TavilyClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
	maxResults int
}

func NewTavilyClient(cfg config.SearchConfig, logger *slog.Logger) *TavilyClient {
	return &TavilyClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		maxResults: cfg.MaxResults,
	}
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs one query and returns up to maxResults normalized hits.
// Without an API key it is a no-op, matching the behaviour of a deployment
// that simply has search disabled.
func (c *TavilyClient) Search(ctx context.Context, query string) []types.SearchResult {
	if c.apiKey == "" {
		return nil
	}

	payload, err := json.Marshal(tavilyRequest{APIKey: c.apiKey, Query: query, MaxResults: c.maxResults})
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to marshal search request", slog.Any("error", err))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to build search request", slog.Any("error", err))
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Search backend unreachable", slog.String("query", query), slog.Any("error", err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "Search backend returned non-success status",
			slog.String("query", query), slog.Int("status", resp.StatusCode))
		return nil
	}

	var body tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.WarnContext(ctx, "Failed to decode search response", slog.Any("error", err))
		return nil
	}

	results := make([]types.SearchResult, 0, len(body.Results))
	for _, item := range body.Results {
		if len(results) >= c.maxResults {
			break
		}
		title := item.Title
		if title == "" {
			title = item.URL
		}
		if title == "" {
			title = "Result"
		}
		results = append(results, types.SearchResult{
			Title:   title,
			URL:     item.URL,
			Snippet: item.Content,
		})
	}
	return results
}
