package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/podcastify/podcastify/internal/model"
)

// stubGenerator implements EpisodeGenerator
type stubGenerator struct {
	calls    int32
	failWith map[string]error
}

func (g *stubGenerator) GenerateEpisode(ctx context.Context, topic string, sourceURLs []string) (*model.Episode, error) {
	atomic.AddInt32(&g.calls, 1)
	if err, ok := g.failWith[topic]; ok {
		return nil, err
	}
	return &model.Episode{ID: "ep_" + topic, Topic: topic}, nil
}

func TestBatchProcessor_ProcessTopics(t *testing.T) {
	gen := &stubGenerator{}
	processor := NewBatchProcessor(gen, 3)

	topics := []string{"photosynthesis", "entropy", "compound interest"}
	results := processor.ProcessTopics(context.Background(), topics, nil)

	if len(results) != len(topics) {
		t.Fatalf("expected %d results, got %d", len(topics), len(results))
	}
	if atomic.LoadInt32(&gen.calls) != int32(len(topics)) {
		t.Errorf("expected %d generator calls, got %d", len(topics), gen.calls)
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("unexpected error for %q: %v", r.Topic, r.Error)
		}
		if r.Episode == nil || r.Episode.Topic != r.Topic {
			t.Errorf("result for %q carries wrong episode: %+v", r.Topic, r.Episode)
		}
		seen[r.Topic] = true
	}
	for _, topic := range topics {
		if !seen[topic] {
			t.Errorf("missing result for topic %q", topic)
		}
	}
}

func TestBatchProcessor_OneFailureDoesNotStopOthers(t *testing.T) {
	gen := &stubGenerator{
		failWith: map[string]error{"entropy": errors.New("provider unavailable")},
	}
	processor := NewBatchProcessor(gen, 2)

	results := processor.ProcessTopics(context.Background(), []string{"photosynthesis", "entropy", "gravity"}, nil)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	failures, successes := 0, 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			if r.Topic != "entropy" {
				t.Errorf("unexpected failed topic %q", r.Topic)
			}
		} else {
			successes++
		}
	}
	if failures != 1 || successes != 2 {
		t.Errorf("expected 1 failure and 2 successes, got %d/%d", failures, successes)
	}
}

func TestBatchProcessor_EmptyTopics(t *testing.T) {
	processor := NewBatchProcessor(&stubGenerator{}, 2)
	results := processor.ProcessTopics(context.Background(), nil, nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadTopicsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.txt")
	content := `# morning batch
photosynthesis

entropy
photosynthesis
  gravity
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	topics, err := ReadTopicsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"photosynthesis", "entropy", "gravity"}
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %v", len(want), topics)
	}
	for i, topic := range want {
		if topics[i] != topic {
			t.Errorf("topic %d: expected %q, got %q", i, topic, topics[i])
		}
	}
}

func TestReadTopicsFromFile_Missing(t *testing.T) {
	if _, err := ReadTopicsFromFile("/nonexistent/topics.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
