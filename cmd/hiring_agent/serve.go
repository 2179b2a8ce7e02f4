package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/server"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring HTTP API",
	Long:  "Start an HTTP server exposing POST /score for resume uploads and GET /health.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	p, cfg, log, closeAll, err := buildPipeline(true, "")
	if err != nil {
		return err
	}
	defer closeAll()

	addr := cfg.ListenAddr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	return server.New(addr, p, log).Start()
}
