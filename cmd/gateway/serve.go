package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ST0x-Technology/st0x.rest.api/internal/auth"
	"github.com/ST0x-Technology/st0x.rest.api/internal/config"
	"github.com/ST0x-Technology/st0x.rest.api/internal/engine/memory"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpapi"
	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
	"github.com/ST0x-Technology/st0x.rest.api/internal/ratelimit"
	"github.com/ST0x-Technology/st0x.rest.api/internal/registry"
	"github.com/ST0x-Technology/st0x.rest.api/internal/store"
	"github.com/ST0x-Technology/st0x.rest.api/internal/tokenlist"
	"github.com/ST0x-Technology/st0x.rest.api/internal/wire"
)

const settingRegistryURL = "registry_url"

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "configs/gateway.toml", "path to the TOML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	registryURL, err := seedRegistryURL(context.Background(), db, cfg.RegistryURL)
	if err != nil {
		return fmt.Errorf("seed registry_url setting: %w", err)
	}

	provider, err := memory.Load(context.Background(), registryURL)
	if err != nil {
		return fmt.Errorf("load registry at startup: %w", err)
	}
	cell := registry.New(provider)

	limiter := ratelimit.New(cfg.RateLimitGlobalRPM, cfg.RateLimitPerKeyRPM)
	verifier := auth.NewVerifier(db, logger)

	traceSink, err := openTraceSink(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("open trace sink: %w", err)
	}
	if closer, ok := traceSink.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	deps := &httpapi.Deps{
		Cell:      cell,
		Store:     db,
		Verifier:  verifier,
		Limiter:   limiter,
		Logger:    logger,
		Tokens:    tokenlist.NewCache(defaultTokenList()),
		TraceSink: traceSink,
		Loader:    memory.Load,
	}

	router := httpapi.NewRouter(deps)
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return runWithGracefulShutdown(server, logger)
}

func runWithGracefulShutdown(server *http.Server, logger *logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithContext(context.Background()).WithField("addr", server.Addr).Info("gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.WithContext(ctx).Info("shutting down")
		return server.Shutdown(ctx)
	}
}

// seedRegistryURL implements spec §4.2 "Startup seeding": read registry_url
// from the settings store; if absent, take it from the static config and
// write it back.
func seedRegistryURL(ctx context.Context, db *store.Store, configured string) (string, error) {
	existing, ok, err := db.GetSetting(ctx, settingRegistryURL)
	if err != nil {
		return "", err
	}
	if ok {
		return existing, nil
	}
	if configured == "" {
		return "", fmt.Errorf("registry_url is not set in config and no prior setting exists")
	}
	if err := db.SetSetting(ctx, settingRegistryURL, configured); err != nil {
		return "", err
	}
	return configured, nil
}

// openTraceSink opens the per-request tracing log file under logDir, or
// returns os.Stdout if logDir is empty.
func openTraceSink(logDir string) (interface {
	Write([]byte) (int, error)
}, error) {
	if logDir == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(logDir, "requests.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// defaultTokenList is the token list /v1/tokens serves. runServe starts no
// background refresh, so this list is served unchanged for the life of the
// process.
func defaultTokenList() []wire.TokenInfo {
	return []wire.TokenInfo{
		{Address: "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", Symbol: "USDC", Decimals: 6},
		{Address: "0x4200000000000000000000000000000000000006", Symbol: "WETH", Decimals: 18},
	}
}
