package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/podcastify/podcastify/internal/model"
)

var (
	outlineLevel   string
	outlineCustom  string
	outlineOut     string
	outlineTimeout time.Duration
)

// outlineCmd represents the outline command
var outlineCmd = &cobra.Command{
	Use:   "outline <topic>",
	Short: "Generate only the episode outline for a topic",
	Long: `Outline runs the first pipeline stage on its own: a validated
3-4 section outline with one Socratic question, one key insight, and
exactly one checkpoint section. Useful for reviewing or editing the
structure before committing to a full generation.

Example:
  podcastify outline "Why is the sky blue?" --level beginner`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)

	outlineCmd.Flags().StringVar(&outlineLevel, "level", "adaptive", "audience level (beginner, intermediate, advanced, adaptive)")
	outlineCmd.Flags().StringVar(&outlineCustom, "custom", "", "caller-supplied outline text to refine instead of inventing one")
	outlineCmd.Flags().StringVar(&outlineOut, "json", "", "output JSON path (default: stdout)")
	outlineCmd.Flags().DurationVar(&outlineTimeout, "timeout", 2*time.Minute, "outline generation timeout")
}

func runOutline(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), outlineTimeout)
	defer cancel()

	cfg := loadConfig()
	generator, log, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	outline, err := generator.GenerateOutline(ctx, topic, model.ParseLevel(outlineLevel), outlineCustom)
	if err != nil {
		return fmt.Errorf("outline failed: %w", err)
	}

	out := os.Stdout
	if outlineOut != "" {
		f, err := os.Create(outlineOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", outlineOut, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(outline)
}
