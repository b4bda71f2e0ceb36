package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	grpchandler "github.com/ogurasousui/shramik-hisab/internal/adapters/grpc/handler"
	httphandler "github.com/ogurasousui/shramik-hisab/internal/adapters/http/handler"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/repository/file"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/repository/memory"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/repository/postgres"
	"github.com/ogurasousui/shramik-hisab/internal/adapters/translator/httpapi"
	"github.com/ogurasousui/shramik-hisab/internal/core/ledger"
	"github.com/ogurasousui/shramik-hisab/internal/core/localization"
	"github.com/ogurasousui/shramik-hisab/internal/platform/config"
	pg "github.com/ogurasousui/shramik-hisab/internal/platform/db/postgres"
	"github.com/ogurasousui/shramik-hisab/internal/platform/server"
	"golang.org/x/sync/errgroup"
)

// kvStore は台帳と言語設定が共有する保存先です。
type kvStore interface {
	ledger.KVStore
	localization.Store
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var (
		store kvStore
		tx    ledger.TransactionManager
		ready func(context.Context) error
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to initialize database pool: %v", err)
		}
		defer dbPool.Close()
		store = postgres.NewKVStore(dbPool)
		tx = pg.NewTransactionManager(dbPool)
		ready = pg.ReadinessCheck(dbPool)
	case config.StorageFile:
		fileStore, err := file.Open(cfg.Storage.FilePath)
		if err != nil {
			log.Fatalf("failed to open data file: %v", err)
		}
		store = fileStore
	default:
		store = memory.NewKVStore()
	}

	clock := ledger.NewLocationClock(cfg.Ledger.Location)
	engine := ledger.NewEngine(store, ledger.Options{
		Clock:             clock,
		Tx:                tx,
		Logger:            logger,
		PlaceholderPhotos: cfg.Ledger.PlaceholderPhotos,
	})
	if err := engine.Load(ctx); err != nil {
		log.Fatalf("failed to load ledger: %v", err)
	}
	if cfg.Ledger.SeedDemo {
		seeded, err := engine.SeedDemo(ctx)
		if err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		if seeded {
			logger.Info("demo data seeded")
		}
	}

	var translator localization.Translator
	if tc := cfg.Localization.Translator; tc.Endpoint != "" {
		translator = httpapi.NewClient(tc.Endpoint, tc.APIKey, tc.Timeout)
	}
	loc, err := localization.NewService(store, translator, localization.Options{
		DefaultLanguage: cfg.Localization.DefaultLanguage,
		Languages:       cfg.Localization.Languages,
		BatchSize:       cfg.Localization.Translator.BatchSize,
		Concurrency:     cfg.Localization.Translator.Concurrency,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalf("failed to initialize localization: %v", err)
	}
	if err := loc.Load(ctx); err != nil {
		logger.Warn("failed to load language, using source text", "err", err)
	}
	engine.AddResetHook(loc.ClearCache)

	grpcServer := server.New(cfg.Server.ListenAddr, grpchandler.NewLedgerGrpcHandler(engine), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("gRPC server listening on %s", cfg.Server.ListenAddr)
		return grpcServer.Run(gctx)
	})
	if cfg.HTTP.ListenAddr != "" {
		router := httphandler.NewRouter(engine, httphandler.RouterOptions{
			Localizer:    loc,
			Logger:       logger,
			MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
			Now:          clock.Now,
			Ready:        ready,
		})
		httpServer := server.NewHTTP(cfg.HTTP.ListenAddr, router)
		g.Go(func() error {
			log.Printf("HTTP server listening on %s", cfg.HTTP.ListenAddr)
			return httpServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
