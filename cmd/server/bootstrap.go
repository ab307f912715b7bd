package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abhiyaya/angelone-claud-mcp/internal/logger"
	"github.com/abhiyaya/angelone-claud-mcp/internal/metrics"
	"github.com/abhiyaya/angelone-claud-mcp/internal/session"
	"github.com/abhiyaya/angelone-claud-mcp/internal/session/sessionobs"
	"github.com/abhiyaya/angelone-claud-mcp/internal/smartapi"
	"github.com/abhiyaya/angelone-claud-mcp/internal/store"
	"github.com/abhiyaya/angelone-claud-mcp/internal/tools"
	"github.com/abhiyaya/angelone-claud-mcp/internal/totp"
	"github.com/abhiyaya/angelone-claud-mcp/internal/trace"
)

const (
	serviceName    = "angelone-mcp"
	serviceVersion = "1.0.0"
)

// initializeSystem initializes the logger and tracer.
func initializeSystem() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(serviceName, serviceVersion); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

func loadConfig() (*store.Config, error) {
	path := os.Getenv("ANGELONE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(context.Background(), "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// buildServer wires the session manager and the MCP tool surface.
func buildServer(cfg *store.Config) (*session.Manager, *server.MCPServer) {
	ctx := context.Background()

	client := smartapi.New(smartapi.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.Credentials.APIKey,
		ClientCode: cfg.Credentials.ClientCode,
		Password:   cfg.Credentials.Password,
		Codes:      totp.New(cfg.Credentials.TOTPSeed),
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
	})

	mgr := session.NewManager(client, session.WithWrapper(sessionobs.Wrap))

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info(ctx, "Serving metrics", "addr", cfg.MetricsAddr)
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				logger.Warn(ctx, "Metrics listener stopped", "error", err)
			}
		}()
	}

	srv := server.NewMCPServer(
		"AngelOne",
		serviceVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	tools.Register(srv, tools.Deps{Session: mgr, Config: cfg})

	logger.Info(ctx, "Tool surface registered",
		"exchange", cfg.Exchange,
		"base_url", cfg.BaseURL,
	)

	return mgr, srv
}
