package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/podcastify/podcastify/internal/model"
	"github.com/podcastify/podcastify/internal/pipeline"
)

var (
	genLevel      string
	genSourceURLs []string
	genOutJSON    string
	genOutMD      string
	genTimeout    time.Duration
	genNoFooter   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a complete micro-episode for a topic",
	Long: `Generate runs the full pipeline for one topic:
- Build an outline around one Socratic question and one key insight
- Compress research sources into cited teaching atoms per section
- Write the Brainy/Snarky dialogue with pause and concept markers
- Extract concepts, pause moments, and chapters

Example:
  podcastify generate "Why is the sky blue?" --provider openai --model gpt-4o-mini
  podcastify generate "Photosynthesis" --source https://en.wikipedia.org/wiki/Photosynthesis --json episode.json --md transcript.md`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genLevel, "level", "adaptive", "audience level (beginner, intermediate, advanced, adaptive)")
	generateCmd.Flags().StringArrayVar(&genSourceURLs, "source", nil, "research source URL (repeatable)")
	generateCmd.Flags().StringVar(&genOutJSON, "json", "episode.json", "output JSON path")
	generateCmd.Flags().StringVar(&genOutMD, "md", "", "output Markdown transcript path (optional)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 5*time.Minute, "overall generation timeout")
	generateCmd.Flags().BoolVar(&genNoFooter, "no-footer", false, "disable footer in Markdown transcripts")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Pipeline.Level = model.ParseLevel(genLevel)
	cfg.Output.IncludeFooter = !genNoFooter

	generator, log, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	episode, err := generator.GenerateEpisode(ctx, topic, genSourceURLs)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	renderer := &pipeline.Renderer{IncludeFooter: cfg.Output.IncludeFooter}

	if genOutJSON != "" {
		if err := writeRendered(genOutJSON, func(f *os.File) error {
			return renderer.RenderJSON(f, episode)
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", genOutJSON)
	}

	if genOutMD != "" {
		if err := writeRendered(genOutMD, func(f *os.File) error {
			return renderer.RenderMarkdown(f, episode)
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", genOutMD)
	}

	return renderer.RenderSummary(os.Stdout, episode)
}

func writeRendered(path string, render func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return render(f)
}
