package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/enrich"
	"fundscout-engine/internal/hiring"
	"fundscout-engine/internal/hiring/ats"
	"fundscout-engine/internal/ingest"
	"fundscout-engine/internal/logger"
	"fundscout-engine/internal/pipeline"
	"fundscout-engine/internal/publish"
	"fundscout-engine/internal/resolve"
	"fundscout-engine/internal/secrets"
	"fundscout-engine/internal/store"
	"fundscout-engine/internal/web"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one full pipeline batch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context())
		},
	}
}

func runOnce(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := logger.New(flagJSONLog, flagDebug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// One run at a time per data dir; cron overlap is the usual culprit.
	lock := flock.New(filepath.Join(dir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run holds the lock in %s", dir)
	}
	defer func() { _ = lock.Unlock() }()

	cfgPath, err := config.EnsureUserConfig(dir)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load (%s): %w", cfgPath, err)
	}
	log.Info("config loaded", zap.String("path", cfgPath))

	db, err := store.Open(filepath.Join(dir, "fundscout.db"))
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	deps, cleanup, err := buildDeps(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer cleanup()

	leads, err := pipeline.New(cfg, deps).Run(ctx)
	if err != nil {
		return err
	}
	log.Info("run finished", zap.Int("leads", len(leads)))
	return nil
}

// buildDeps wires the concrete components. The Gemini key is the only hard
// requirement; Telegram and Sheets degrade to disabled when unconfigured.
func buildDeps(ctx context.Context, cfg config.Config, db *store.DB, log *zap.Logger) (pipeline.Deps, func(), error) {
	fetchTimeout := time.Duration(cfg.Resolver.FetchTimeoutSeconds) * time.Second
	probeTimeout := time.Duration(cfg.Resolver.ProbeTimeoutSeconds) * time.Second
	hiringTimeout := time.Duration(cfg.Hiring.FetchTimeoutSeconds) * time.Second

	// Search traffic shares one rate-limited client; everything else gets a
	// plain one sized for its timeout.
	searchClient := web.NewClient(fetchTimeout, web.NewHostLimiter(cfg.Resolver.SearchPerSec, 1))
	probeClient := web.NewClient(probeTimeout, nil)
	hiringClient := web.NewClient(hiringTimeout, nil)

	geminiKey := secrets.Lookup(secrets.GeminiAPIKey)
	if geminiKey == "" {
		return pipeline.Deps{}, nil, fmt.Errorf("%s is not set (env or keychain)", secrets.GeminiAPIKey)
	}
	enricher, err := enrich.NewExtractor(ctx, geminiKey, cfg.Enrich, searchClient, log)
	if err != nil {
		return pipeline.Deps{}, nil, fmt.Errorf("init extractor: %w", err)
	}
	cleanup := func() { _ = enricher.Close() }

	registry := ats.NewRegistry(hiringClient, cfg.Hiring.TechTitleKeywords)

	deps := pipeline.Deps{
		DB:       db,
		Ingester: ingest.New(cfg.Ingest, log),
		Enricher: enricher,
		Resolver: resolve.New(cfg.Resolver, searchClient, log),
		Detector: hiring.NewDetector(cfg.Hiring, hiringClient, registry, log),
		Probe:    probeClient,
		Log:      log,
	}

	if cfg.App.EnableLinkedInFallback {
		deps.LinkedIn = resolve.NewLinkedInFinder(searchClient, log)
	}

	if token := secrets.Lookup(secrets.TelegramToken); token != "" && cfg.Publish.TelegramChatID != "" {
		deps.Alerter = publish.NewTelegramAlerter(token, cfg.Publish.TelegramChatID, log)
	} else {
		log.Info("telegram alerts disabled")
	}

	if cfg.Publish.SpreadsheetID != "" {
		credsPath := cfg.Publish.CredsFile
		if !filepath.IsAbs(credsPath) {
			credsPath = filepath.Join(dataDir(), credsPath)
		}
		sheet, err := publish.NewSheetPublisher(ctx, credsPath, cfg.Publish.SpreadsheetID, log)
		if err != nil {
			log.Warn("sheet publishing disabled", zap.Error(err))
		} else {
			deps.Sheet = sheet
		}
	} else {
		log.Info("sheet publishing disabled")
	}

	return deps, cleanup, nil
}
