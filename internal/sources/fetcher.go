// Package sources retrieves research documents for the compression stage.
// Retrieval quality is the retriever's concern; this fetcher only turns
// URLs into {url, title, content, relevance} tuples, politely.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/podcastify/podcastify/internal/logger"
	"github.com/podcastify/podcastify/internal/model"
	"github.com/podcastify/podcastify/internal/worker"
)

// Fetcher fetches research source documents over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker
	limiter    *worker.Limiter
	log        *logger.Logger
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(cfg model.HTTPConfig, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(2, 4),
		log:       log,
	}
}

// Fetch retrieves one source document. Relevance is left at 1.0; callers
// with a real retriever overwrite it with the retrieval score.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*model.SourceDocument, error) {
	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	doc := &model.SourceDocument{URL: rawURL, RelevanceScore: 1.0}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "xhtml") {
		title, text, err := ExtractText(string(body))
		if err != nil {
			return nil, fmt.Errorf("extract text: %w", err)
		}
		doc.Title = title
		doc.Content = text
	} else {
		doc.Content = string(body)
	}

	if strings.TrimSpace(doc.Content) == "" {
		return nil, fmt.Errorf("no usable text at %s", rawURL)
	}

	return doc, nil
}

// FetchAll fetches every URL concurrently. Individual failures become
// warnings rather than aborting the batch: missing sources degrade
// confidence downstream, they don't stop the episode.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]model.SourceDocument, []string) {
	var (
		mu       sync.Mutex
		docs     []model.SourceDocument
		warnings []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, u := range urls {
		g.Go(func() error {
			start := time.Now()
			doc, err := f.Fetch(gctx, u)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.log.Warn("source fetch failed", "url", u, "error", err)
				warnings = append(warnings, fmt.Sprintf("source %s unavailable: %v", u, err))
				return nil
			}
			f.log.Debug("source fetched", "url", u, "bytes", len(doc.Content), "took", time.Since(start))
			docs = append(docs, *doc)
			return nil
		})
	}
	_ = g.Wait()

	return docs, warnings
}
