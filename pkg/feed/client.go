// Package feed talks to the newsdata.io latest-news endpoint.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/pkg/httpclient"
)

// DefaultBaseURL is the production latest-news endpoint.
const DefaultBaseURL = "https://newsdata.io/api/1/latest"

const defaultTimeout = 10 * time.Second

// RawArticle is one article exactly as the feed returns it. Creator may be
// empty or absent, and Description/Content are optional.
type RawArticle struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Creator     []string `json:"creator"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
}

// latestResponse mirrors the envelope around the results list.
type latestResponse struct {
	Status  string       `json:"status"`
	Results []RawArticle `json:"results"`
}

// Client fetches the latest articles for a fixed query term.
type Client struct {
	http    httpclient.Client
	baseURL string
	apiKey  string
	log     logger.Logger
}

// NewClient builds a feed client. A nil http client gets a default resty
// client with a 10s timeout; an empty baseURL falls back to DefaultBaseURL.
func NewClient(http httpclient.Client, baseURL, apiKey string, log logger.Logger) *Client {
	if http == nil {
		http = httpclient.NewRestyClient(defaultTimeout)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Client{http: http, baseURL: baseURL, apiKey: apiKey, log: log}
}

// Latest retrieves the current page of articles matching the query. The
// returned slice preserves the feed's ordering. Transport failures and
// non-success statuses yield a *RequestError, malformed payloads a
// *DecodeError.
func (c *Client) Latest(ctx context.Context, query string) ([]RawArticle, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("q", query)
	u.RawQuery = q.Encode()

	resp, err := c.http.Get(ctx, u.String(), nil)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	body := resp.Body()
	if resp.StatusCode() != 200 {
		return nil, &RequestError{StatusCode: resp.StatusCode(), Snippet: responseSnippet(body)}
	}

	var decoded latestResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if !strings.EqualFold(decoded.Status, "success") {
		return nil, &DecodeError{Err: fmt.Errorf("feed reported status %q", decoded.Status)}
	}

	c.log.DebugObj("feed page fetched", "feed_fetch", map[string]any{
		"query":   query,
		"results": len(decoded.Results),
	})

	return decoded.Results, nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
