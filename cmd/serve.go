package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gaurav-prasanna/newscast/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the briefing web UI",
	Long: `Serve starts a single-page web UI with topic and region selectors, a
generate button, an audio player and PDF/MP3 downloads.

Examples:
  newscast serve
  newscast serve --addr 127.0.0.1:9000 --provider mock`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides NEWSCAST_ADDR)")
	serveCmd.Flags().String("provider", "", "Generation provider: gemini, openai or mock")
	serveCmd.Flags().String("model", "", "Model id")
	serveCmd.Flags().String("speech", "", "Speech engine: gtts or openai")
	serveCmd.Flags().String("output_dir", "", "Output directory (default: system temp dir)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	e, err := server.New(svc, logger)
	if err != nil {
		return err
	}
	return server.Run(ctx, e, cfg.Addr, logger)
}
