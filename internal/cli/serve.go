package cli

import (
	"github.com/spf13/cobra"

	"github.com/podcastify/podcastify/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the pipeline over HTTP for frontend integrations:

  GET  /api/v1/health
  POST /api/v1/outline                    {"topic": "...", "level": "..."}
  POST /api/v1/generate                   {"topic": "...", "source_urls": [...]}
  GET  /api/v1/episodes/:id
  GET  /api/v1/episodes/:id/transcript

Episodes live in memory and expire after the configured TTL.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	generator, log, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	srv := server.New(generator, cfg.Server, log)
	return srv.Run()
}
