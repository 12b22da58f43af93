// Package server exposes tree search, matrix enumeration, and suite runs as
// Model Context Protocol tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/desktop-matrix/internal/model"
	"github.com/mj1618/desktop-matrix/internal/platform"
	"github.com/mj1618/desktop-matrix/internal/version"
	"github.com/rs/zerolog"
)

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Taxonomy  model.RoleTaxonomy
	Logger    zerolog.Logger
}

// Server wraps the MCP server with the tree provider and cache.
type Server struct {
	provider   *platform.Provider
	cache      *TreeCache
	providerMu sync.Mutex
	taxonomy   model.RoleTaxonomy
	log        zerolog.Logger
	metrics    *metrics
	mcp        *mcpserver.MCPServer
}

// New creates and configures an MCP server with all desktop-matrix tools.
func New(cfg Config) (*Server, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return NewWithProvider(provider, cfg), nil
}

// NewWithProvider is New with an explicit provider.
func NewWithProvider(provider *platform.Provider, cfg Config) *Server {
	tax := cfg.Taxonomy
	if tax == nil {
		tax = model.DefaultTaxonomy
	}
	s := &Server{
		provider: provider,
		cache:    NewTreeCache(cfg.CacheTTL),
		taxonomy: tax,
		log:      cfg.Logger.With().Str("component", "mcp").Logger(),
		metrics:  newMetrics(),
	}
	s.cache.onLookup = s.metrics.observeCache

	s.mcp = mcpserver.NewMCPServer(
		"desktop-matrix",
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	s.registerTools()
	return s
}

// Serve runs the server on the configured transport until it fails or, for
// HTTP, until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	s.log.Info().Str("transport", cfg.Transport).Dur("cache_ttl", cfg.CacheTTL).Msg("starting MCP server")
	switch cfg.Transport {
	case TransportStdio, "":
		return mcpserver.ServeStdio(s.mcp)
	case TransportHTTP:
		httpServer := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           s.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				s.log.Warn().Err(err).Msg("shutdown")
			}
		}()
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// read
	s.mcp.AddTool(
		mcp.NewTool("read",
			mcp.WithDescription("Read a UI element tree snapshot. Returns elements with IDs, roles, titles, bounds, and actions."),
			mcp.WithString("path", mcp.Description("Snapshot file (YAML or JSON)"), mcp.Required()),
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = unlimited)")),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to include; sub-roles match too")),
			mcp.WithString("bbox", mcp.Description("Only elements intersecting x,y,w,h")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with breadcrumb paths")),
			mcp.WithBoolean("prune", mcp.Description("Drop anonymous group containers")),
		),
		s.instrument("read", s.handleRead),
	)

	// find
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find every element of a role or any of its sub-roles, in document order"),
			mcp.WithString("path", mcp.Description("Snapshot file (YAML or JSON)"), mcp.Required()),
			mcp.WithString("type", mcp.Description("Role to search for (e.g. 'btn' also finds 'chk' and 'radio')")),
			mcp.WithString("text", mcp.Description("Case-insensitive text the element must contain")),
			mcp.WithString("within", mcp.Description("Role some ancestor must have")),
			mcp.WithNumber("scope-id", mcp.Description("Limit to descendants of this element ID")),
		),
		s.instrument("find", s.handleFind),
	)

	// ancestor
	s.mcp.AddTool(
		mcp.NewTool("ancestor",
			mcp.WithDescription("Find the nearest ancestor of an element that has a role or one of its sub-roles"),
			mcp.WithString("path", mcp.Description("Snapshot file (YAML or JSON)"), mcp.Required()),
			mcp.WithNumber("id", mcp.Description("Starting element ID"), mcp.Required()),
			mcp.WithString("type", mcp.Description("Ancestor role"), mcp.Required()),
		),
		s.instrument("ancestor", s.handleAncestor),
	)

	// matrix
	s.mcp.AddTool(
		mcp.NewTool("matrix",
			mcp.WithDescription("Enumerate every combination of a test matrix in odometer order (last dimension varies fastest)"),
			mcp.WithString("matrix", mcp.Description("Matrix YAML: a mapping of name to values, or a list of {name, values}")),
			mcp.WithString("path", mcp.Description("Matrix file, used when matrix is not given")),
			mcp.WithNumber("limit", mcp.Description("Max combinations to return (0 = all)")),
		),
		s.instrument("matrix", s.handleMatrix),
	)

	// run
	s.mcp.AddTool(
		mcp.NewTool("run",
			mcp.WithDescription("Run a data-driven suite: every check is evaluated for every matrix combination"),
			mcp.WithString("path", mcp.Description("Suite file"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop at the first failing combination")),
			mcp.WithNumber("limit", mcp.Description("Max combinations to run (0 = all)")),
		),
		s.instrument("run", s.handleRun),
	)

	// diff
	s.mcp.AddTool(
		mcp.NewTool("diff",
			mcp.WithDescription("Compare two snapshots. Elements are matched by role, title, and path, so shifted IDs do not count as changes."),
			mcp.WithString("before", mcp.Description("Earlier snapshot file"), mcp.Required()),
			mcp.WithString("after", mcp.Description("Later snapshot file"), mcp.Required()),
			mcp.WithString("type", mcp.Description("Only compare elements of this role, sub-roles included")),
		),
		s.instrument("diff", s.handleDiff),
	)
}
