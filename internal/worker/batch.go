package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/podcastify/podcastify/internal/model"
)

// EpisodeGenerator produces one episode per topic. Satisfied by the
// pipeline generator; an interface so batch tests can stub it.
type EpisodeGenerator interface {
	GenerateEpisode(ctx context.Context, topic string, sourceURLs []string) (*model.Episode, error)
}

// EpisodeJob is one topic in a batch run
type EpisodeJob struct {
	Topic      string
	SourceURLs []string
	Generator  EpisodeGenerator
}

// Execute runs the full pipeline for the job's topic
func (j *EpisodeJob) Execute(ctx context.Context) Result {
	episode, err := j.Generator.GenerateEpisode(ctx, j.Topic, j.SourceURLs)
	return &EpisodeResult{
		Topic:   j.Topic,
		Episode: episode,
		Error:   err,
	}
}

// EpisodeResult is the outcome of one batch job
type EpisodeResult struct {
	Topic   string
	Episode *model.Episode
	Error   error
}

// GetError returns the error from the episode result
func (r *EpisodeResult) GetError() error {
	return r.Error
}

// BatchProcessor generates episodes for multiple topics concurrently
type BatchProcessor struct {
	generator   EpisodeGenerator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(generator EpisodeGenerator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// ProcessTopics generates episodes for all topics concurrently
func (b *BatchProcessor) ProcessTopics(ctx context.Context, topics []string, sourceURLs []string) []*EpisodeResult {
	if len(topics) == 0 {
		return []*EpisodeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, topic := range topics {
		pool.Submit(&EpisodeJob{
			Topic:      topic,
			SourceURLs: sourceURLs,
			Generator:  b.generator,
		})
	}

	results := pool.Wait()

	episodeResults := make([]*EpisodeResult, len(results))
	for i, result := range results {
		episodeResults[i] = result.(*EpisodeResult)
	}

	return episodeResults
}

// ProcessFile reads topics from a file and generates episodes for them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, sourceURLs []string) ([]*EpisodeResult, error) {
	topics, err := ReadTopicsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read topics: %w", err)
	}

	return b.ProcessTopics(ctx, topics, sourceURLs), nil
}

// ReadTopicsFromFile reads topics from a file (one per line, # comments)
func ReadTopicsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var topics []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			topics = append(topics, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return topics, nil
}
