package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"relviz/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Serve the HTTP rendering front end",
	Long: `Serve starts an HTTP server with a form page on / and a rendering
endpoint on /render. It runs until interrupted`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Serve.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "listening on %s\n", cfg.Serve.Addr)
	}
	return web.New(cfg, engineRegistry(cfg)).Run(ctx)
}
