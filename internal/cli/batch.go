package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/podcastify/podcastify/internal/model"
	"github.com/podcastify/podcastify/internal/pipeline"
	"github.com/podcastify/podcastify/internal/worker"
)

var (
	batchLevel       string
	batchSourceURLs  []string
	batchOutDir      string
	batchConcurrency int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <topics-file>",
	Short: "Generate episodes for multiple topics from a file",
	Long: `Batch reads topics from a file (one per line, # for comments) and
generates an episode for each, running topics concurrently. One topic
failing does not stop the others.

Example:
  podcastify batch topics.txt --out-dir episodes/ --concurrency 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchLevel, "level", "adaptive", "audience level for all topics")
	batchCmd.Flags().StringArrayVar(&batchSourceURLs, "source", nil, "research source URL shared by all topics (repeatable)")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "episodes", "directory for generated episode JSON files")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "topics generated in parallel")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	topicsFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Pipeline.Level = model.ParseLevel(batchLevel)

	generator, log, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(generator, batchConcurrency)
	results, err := processor.ProcessFile(ctx, topicsFile, batchSourceURLs)
	if err != nil {
		return err
	}

	renderer := &pipeline.Renderer{IncludeFooter: cfg.Output.IncludeFooter}
	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %q: %v\n", result.Topic, result.Error)
			continue
		}

		path := filepath.Join(batchOutDir, slugify(result.Topic)+".json")
		if err := writeRendered(path, func(f *os.File) error {
			return renderer.RenderJSON(f, result.Episode)
		}); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %q: %v\n", result.Topic, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "OK   %q -> %s\n", result.Topic, path)
	}

	fmt.Fprintf(os.Stderr, "\n%d/%d episodes generated\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d topics failed", failed, len(results))
	}
	return nil
}

// slugify derives a filesystem-safe name from a topic
func slugify(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	if slug == "" {
		slug = "episode"
	}
	return slug
}
