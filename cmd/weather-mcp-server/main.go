package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/pgkeogh/weather-mcp-atomic/configs"
	"github.com/pgkeogh/weather-mcp-atomic/internal/app"
	"github.com/pgkeogh/weather-mcp-atomic/internal/audit"
	"github.com/pgkeogh/weather-mcp-atomic/internal/cache"
	"github.com/pgkeogh/weather-mcp-atomic/internal/config"
	"github.com/pgkeogh/weather-mcp-atomic/internal/extract"
	"github.com/pgkeogh/weather-mcp-atomic/internal/httpapi"
	"github.com/pgkeogh/weather-mcp-atomic/internal/log"
	"github.com/pgkeogh/weather-mcp-atomic/internal/policy"
	"github.com/pgkeogh/weather-mcp-atomic/internal/processing"
	"github.com/pgkeogh/weather-mcp-atomic/internal/render"
	"github.com/pgkeogh/weather-mcp-atomic/internal/runtime"
	"github.com/pgkeogh/weather-mcp-atomic/internal/secrets"
	"github.com/pgkeogh/weather-mcp-atomic/internal/timeutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Stdio transport owns stdout, so all logging goes to stderr.
	logger := log.New(cfg.LogLevel)

	var rendered []byte
	if cfg.PolicyPath != "" {
		rendered, err = render.File(cfg.PolicyPath)
	} else {
		var raw []byte
		raw, err = configs.Load(configs.DefaultPolicy)
		if err == nil {
			rendered, err = render.Bytes(configs.DefaultPolicy, raw)
		}
	}
	if err != nil {
		logger.Error("render policy failed", "error", err)
		os.Exit(1)
	}

	pol, err := policy.Load(rendered)
	if err != nil {
		logger.Error("parse policy failed", "error", err)
		os.Exit(1)
	}

	store := cache.New(logger)

	secretSvc := &secrets.Service{
		Provider: secrets.EnvProvider{Prefix: cfg.SecretPrefix},
		Allowed:  pol.SecretAllowed,
		Cache:    store,
		TTL:      timeutil.ParseDurationOrDefault(pol.Cache.SecretTTL, 10*time.Minute),
		Logger:   logger,
	}

	var limiter *rate.Limiter
	if pol.HTTP.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(pol.HTTP.RatePerMinute)/60.0), pol.HTTP.RatePerMinute)
	}
	httpClient := &httpapi.Client{
		Allowed:        pol.HostAllowed,
		Limiter:        limiter,
		MaxRetries:     pol.HTTP.MaxRetries,
		Backoff:        timeutil.ParseDurationOrDefault(pol.HTTP.RetryBackoff, time.Second),
		MaxBodyBytes:   pol.HTTP.MaxBodyBytes,
		DefaultTimeout: timeutil.ParseDurationOrDefault(pol.HTTP.DefaultTimeout, 30*time.Second),
		Logger:         logger,
	}

	completion := &processing.CompletionClient{
		HTTP:         httpClient,
		Secrets:      secretSvc,
		Endpoint:     pol.Completion.Endpoint,
		KeySecret:    pol.Completion.SecretName,
		DefaultModel: pol.Completion.DefaultModel,
		Timeout:      timeutil.ParseDurationOrDefault(pol.HTTP.DefaultTimeout, 30*time.Second),
		Logger:       logger,
	}

	builder := runtime.Builder{
		Logger:     logger,
		Audit:      audit.New(logger),
		Policy:     pol,
		Cache:      store,
		Secrets:    secretSvc,
		HTTP:       httpClient,
		Completion: completion,
		Extract:    extract.Extractor{Logger: logger},
	}
	server, err := builder.Build()
	if err != nil {
		logger.Error("build server failed", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	switch cfg.Transport {
	case "stdio":
		if err := runStdio(baseCtx, server); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	default:
		if err := runHTTP(baseCtx, cfg, server, logger); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	}
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func runHTTP(ctx context.Context, cfg config.Config, server *mcp.Server, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	application, err := app.New(ctx, cfg, handler, logger)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
