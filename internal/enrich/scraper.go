// Package enrich backfills missing article metadata by scraping the
// article pages the feed links to.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/pkg/feed"
	"github.com/padmin-io/newsboard/pkg/httpclient"
)

const (
	maxHTMLBodyBytes  = 1 << 20 // 1 MiB
	maxScrapeWorkers  = 5
	defaultGetTimeout = 10 * time.Second
)

// Scraper fills in empty descriptions from the og: metadata of the linked
// article pages. Articles without a link, or whose page cannot be fetched,
// pass through unchanged.
type Scraper struct {
	client httpclient.Client
	log    logger.Logger
}

// NewScraper creates a Scraper with the given HTTP client and logger.
func NewScraper(client httpclient.Client, log logger.Logger) *Scraper {
	if client == nil {
		client = httpclient.NewRestyClient(defaultGetTimeout)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scraper{client: client, log: log}
}

// Enrich returns a copy of raws where articles missing a description have
// it backfilled from their page metadata. Order and length are preserved;
// on cancellation the untouched originals are returned for the remainder.
func (s *Scraper) Enrich(ctx context.Context, raws []feed.RawArticle) []feed.RawArticle {
	out := make([]feed.RawArticle, len(raws))
	copy(out, raws)

	var pending []int
	for i, raw := range raws {
		if strings.TrimSpace(raw.Description) == "" && strings.TrimSpace(raw.Link) != "" {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return out
	}

	workerCount := min(len(pending), maxScrapeWorkers)

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for range workerCount {
		wg.Add(1)
		go s.scrapeWorker(ctx, raws, jobCh, out, &wg)
	}

	for _, idx := range pending {
		if ctx.Err() != nil {
			break
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	return out
}

// scrapeWorker processes article indexes from the job channel.
func (s *Scraper) scrapeWorker(
	ctx context.Context,
	raws []feed.RawArticle,
	jobCh <-chan int,
	out []feed.RawArticle,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		raw := raws[idx]
		description, err := s.fetchDescription(ctx, raw.Link)
		if err != nil {
			s.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"url":   raw.Link,
				"error": err.Error(),
			})
			continue
		}
		if description != "" {
			raw.Description = description
			out[idx] = raw
		}
	}
}

// fetchDescription fetches the article page and extracts its description.
func (s *Scraper) fetchDescription(ctx context.Context, url string) (string, error) {
	resp, err := s.client.Get(ctx, url, nil)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	return parseDescription(body)
}

// parseDescription extracts the page description from the HTML body.
func parseDescription(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	if desc := extract(`meta[property="og:description"]`); desc != "" {
		return desc, nil
	}
	return extract(`meta[name="description"]`), nil
}
