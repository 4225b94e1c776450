package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/podcastify/podcastify/internal/cache"
	"github.com/podcastify/podcastify/internal/logger"
)

// Client wraps a Provider with response caching and rate limiting. Stages
// talk to the Client, never to a Provider directly.
type Client struct {
	provider Provider
	cache    cache.Cache // nil when caching is disabled
	limiter  *rate.Limiter
	log      *logger.Logger
}

// NewClient creates a client around the given provider. A nil store
// disables caching; requestsPerSecond <= 0 disables throttling.
func NewClient(provider Provider, store cache.Cache, requestsPerSecond float64, burst int, log *logger.Logger) *Client {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		provider: provider,
		cache:    store,
		limiter:  limiter,
		log:      log,
	}
}

// Provider returns the wrapped provider
func (c *Client) Provider() Provider {
	return c.provider
}

// Generate performs one generation call, consulting the cache first unless
// the request bypasses it. Only successful responses are cached.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	key := c.requestKey(req)

	if c.cache != nil && !req.BypassCache {
		if data, found := c.cache.Get(key); found {
			var resp GenerateResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				c.log.Debug("llm cache hit", "provider", c.provider.Name())
				return &resp, nil
			}
			_ = c.cache.Delete(key)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	c.log.Debug("llm generate",
		"provider", c.provider.Name(),
		"prompt_len", len(req.Prompt),
		"temperature", req.Temperature,
	)

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	c.log.Debug("llm generate done",
		"provider", c.provider.Name(),
		"model", resp.Model,
		"tokens", resp.TokensUsed,
	)

	if c.cache != nil && !req.BypassCache {
		if data, err := json.Marshal(resp); err == nil {
			_ = c.cache.Set(key, data, 0)
		}
	}

	return resp, nil
}

// requestKey derives a cache key from everything that shapes the response
func (c *Client) requestKey(req GenerateRequest) string {
	return cache.HashKey(fmt.Sprintf("llm|%s|%s|%s|%s|%.3f|%d|%t",
		c.provider.Name(), req.Model, req.System, req.Prompt,
		req.Temperature, req.MaxTokens, req.JSONOutput))
}
