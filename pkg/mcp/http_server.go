package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPConfig extends Config with HTTP-specific settings.
type HTTPConfig struct {
	Config

	// Addr is the address to listen on (e.g., ":8080" or "localhost:8080").
	Addr string

	// EndpointPath is the path for the MCP endpoint (default: "/mcp").
	EndpointPath string
}

// NewHTTPHandler returns the streamable HTTP handler mounted at the endpoint path.
func NewHTTPHandler(cfg HTTPConfig) (http.Handler, error) {
	mcpServer, err := NewServer(cfg.Config)
	if err != nil {
		return nil, err
	}

	endpointPath := cfg.EndpointPath
	if endpointPath == "" {
		endpointPath = "/mcp"
	}

	httpServer := mcpserver.NewStreamableHTTPServer(
		mcpServer,
		mcpserver.WithEndpointPath(endpointPath),
	)

	mux := http.NewServeMux()
	mux.Handle(endpointPath, httpServer)
	return mux, nil
}

// RunHTTPServer starts the MCP server over streamable HTTP transport.
// Every client shares the session stack.
func RunHTTPServer(ctx context.Context, cfg HTTPConfig) error {
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	handler, err := NewHTTPHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No timeout for SSE streaming
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("starting MCP HTTP server", "addr", cfg.Addr, "endpoint", cfg.EndpointPath)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}
