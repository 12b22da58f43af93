package server

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's Prometheus collectors. Each server gets its own
// registry so several can coexist in one process.
type metrics struct {
	registry     *prometheus.Registry
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_matrix_tool_calls_total",
				Help: "Total number of MCP tool calls by tool and result",
			},
			[]string{"tool", "result"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_matrix_tool_duration_seconds",
				Help:    "Duration of MCP tool calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_matrix_tree_cache_lookups_total",
				Help: "Tree cache lookups by result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(m.toolCalls, m.toolDuration, m.cacheLookups)
	return m
}

func (m *metrics) observeCache(hit bool) {
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// instrument wraps a tool handler with call counting and timing.
func (s *Server) instrument(tool string, h mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := h(ctx, request)
		s.metrics.toolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

		result := "ok"
		if err != nil || (res != nil && res.IsError) {
			result = "error"
		}
		s.metrics.toolCalls.WithLabelValues(tool, result).Inc()
		s.log.Debug().Str("tool", tool).Str("result", result).Dur("took", time.Since(start)).Msg("tool call")
		return res, err
	}
}
