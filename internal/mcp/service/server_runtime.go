package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Transport kinds supported by Run.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const defaultHTTPAddr = "localhost:8081"

const shutdownTimeout = 5 * time.Second

// Config selects how the MCP server is exposed.
type Config struct {
	// Transport is "stdio" or "http". Empty means stdio.
	Transport string
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
}

// Run starts the MCP server and blocks until context cancellation.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return s.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return s.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server on the provided transport.
// Context cancellation is the normal exit path, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP exposes the same tool handlers used by stdio over the streamable
// HTTP transport, plus a health endpoint for probes.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = defaultHTTPAddr
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/mcp/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Starting MCP HTTP server on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
