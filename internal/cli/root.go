// Package cli wires the generation pipeline into the podcastify command.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podcastify/podcastify/internal/cache"
	"github.com/podcastify/podcastify/internal/llm"
	"github.com/podcastify/podcastify/internal/logger"
	"github.com/podcastify/podcastify/internal/model"
	"github.com/podcastify/podcastify/internal/pipeline"
	"github.com/podcastify/podcastify/internal/sources"
)

var (
	cfgFile string
	verbose bool

	llmProvider string
	llmModel    string
	noCache     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "podcastify",
	Short: "Podcastify - Socratic micro-coaching podcast generator",
	Long: `Podcastify turns a topic into a 2-3 minute Socratic podcast script:
one transformative question, one core insight, performed as a dialogue
between a patient teacher and a skeptical learner.

Every episode is built in three validated stages: an outline with a
curiosity-gap question, source-cited teaching atoms compressed from real
research documents, and a phase-structured dialogue with retrieval-practice
pauses and first-mention concept tags.

Scripts are text artifacts: audio synthesis and concept-graph rendering
consume them downstream.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("podcastify v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.podcastify/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&llmProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "model", "", "LLM model name")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable LLM response caching")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".podcastify"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PODCASTIFY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, then config
// file / environment, then flags.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetInt("llm.max_tokens"); v > 0 {
		cfg.LLM.MaxTokens = v
	}
	if v := viper.GetInt("pipeline.max_attempts"); v > 0 {
		cfg.Pipeline.MaxAttempts = v
	}
	if v := viper.GetInt("pipeline.section_workers"); v > 0 {
		cfg.Pipeline.SectionWorkers = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}

	cfg.Output.Verbose = verbose
	if noCache {
		cfg.Cache.Enabled = false
	}
	return cfg
}

// resolveAPIKey fills in the provider credential from the environment
func resolveAPIKey(cfg *model.Config) error {
	if cfg.LLM.APIKey != "" {
		return nil
	}
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// buildGenerator assembles the full pipeline from configuration
func buildGenerator(cfg *model.Config) (*pipeline.Generator, *logger.Logger, error) {
	mode := "production"
	if cfg.Output.Verbose {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	if err := resolveAPIKey(cfg); err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, err
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".podcastify", "cache")
			}
		}
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	client := llm.NewClient(provider, store, cfg.LLM.RequestsPerSecond, cfg.LLM.Burst, log)
	fetcher := sources.NewFetcher(cfg.HTTP, log)

	return pipeline.NewGenerator(client, fetcher, cfg, log), log, nil
}
