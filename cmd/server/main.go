package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abhiyaya/angelone-claud-mcp/internal/logger"
	"github.com/abhiyaya/angelone-claud-mcp/internal/trace"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	if err := initializeSystem(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr, srv := buildServer(cfg)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		// stdio transport: stdout is the protocol channel, logs go
		// to stderr. Returns on stdin EOF.
		errc <- server.ServeStdio(srv)
	}()

	ctx := context.Background()
	logger.Info(ctx, "AngelOne MCP server started")

	select {
	case err = <-errc:
	case sig := <-sigc:
		logger.Info(ctx, "Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = mgr.Close(shutdownCtx)
	_ = trace.Shutdown(shutdownCtx)
	return err
}
