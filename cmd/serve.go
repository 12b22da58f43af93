package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mj1618/desktop-matrix/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing desktop-matrix tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes read, find,
ancestor, matrix, run, and diff as tools. AI agents can call tools directly without
shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents). Serves
                    MCP at /mcp, Prometheus metrics at /metrics, and a
                    liveness probe at /healthz.

Examples:
  desktop-matrix serve
  desktop-matrix serve --transport streamable-http --port 8080
  desktop-matrix serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Duration("cache-ttl", 500*time.Millisecond, "Element tree cache TTL (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	srvCfg := server.Config{
		Transport: cfg.Serve.Transport,
		Port:      cfg.Serve.Port,
		CacheTTL:  cfg.Serve.CacheTTL,
		Taxonomy:  taxonomy(),
		Logger:    logger,
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx, srvCfg)
}
