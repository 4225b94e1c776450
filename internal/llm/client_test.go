package llm

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/podcastify/podcastify/internal/cache"
)

// countingProvider implements Provider and counts real generations
type countingProvider struct {
	calls int32
	text  string
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *countingProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	atomic.AddInt32(&p.calls, 1)
	return &GenerateResponse{Text: p.text, Model: "counting-1"}, nil
}

func TestClient_CachesResponses(t *testing.T) {
	provider := &countingProvider{text: "cached response"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(provider, store, 0, 0, nil)

	req := GenerateRequest{Prompt: "same prompt", Temperature: 0.7}

	for i := 0; i < 3; i++ {
		resp, err := client.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "cached response" {
			t.Errorf("unexpected text %q", resp.Text)
		}
	}

	if n := atomic.LoadInt32(&provider.calls); n != 1 {
		t.Errorf("expected 1 provider call for identical requests, got %d", n)
	}
}

func TestClient_BypassCache(t *testing.T) {
	provider := &countingProvider{text: "fresh"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(provider, store, 0, 0, nil)

	req := GenerateRequest{Prompt: "same prompt"}
	if _, err := client.Generate(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	req.BypassCache = true
	if _, err := client.Generate(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Generate(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	if n := atomic.LoadInt32(&provider.calls); n != 3 {
		t.Errorf("expected bypass to force fresh calls, got %d", n)
	}
}

func TestClient_DistinctRequestsDistinctKeys(t *testing.T) {
	provider := &countingProvider{text: "x"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(provider, store, 0, 0, nil)

	if _, err := client.Generate(context.Background(), GenerateRequest{Prompt: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Generate(context.Background(), GenerateRequest{Prompt: "a", Temperature: 0.9}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Generate(context.Background(), GenerateRequest{Prompt: "b"}); err != nil {
		t.Fatal(err)
	}

	if n := atomic.LoadInt32(&provider.calls); n != 3 {
		t.Errorf("expected 3 distinct cache keys, got %d provider calls", n)
	}
}

func TestClient_KeysAreNamespacedHashes(t *testing.T) {
	provider := &countingProvider{text: "x"}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(provider, store, 0, 0, nil)

	req := GenerateRequest{System: "sys", Prompt: "p", Temperature: 0.7, MaxTokens: 100, JSONOutput: true}
	if _, err := client.Generate(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	key := cache.HashKey(fmt.Sprintf("llm|%s|%s|%s|%s|%.3f|%d|%t",
		provider.Name(), req.Model, req.System, req.Prompt,
		req.Temperature, req.MaxTokens, req.JSONOutput))
	if _, found := store.Get(key); !found {
		t.Error("expected the response cached under the shared namespaced key")
	}
}

func TestClient_NilCacheDisablesCaching(t *testing.T) {
	provider := &countingProvider{text: "x"}
	client := NewClient(provider, nil, 0, 0, nil)

	for i := 0; i < 2; i++ {
		if _, err := client.Generate(context.Background(), GenerateRequest{Prompt: "a"}); err != nil {
			t.Fatal(err)
		}
	}
	if n := atomic.LoadInt32(&provider.calls); n != 2 {
		t.Errorf("expected every call to reach the provider, got %d", n)
	}
}
