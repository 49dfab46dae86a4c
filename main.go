package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/danielhkuo/project51/cache"
	"github.com/danielhkuo/project51/cliparse"
	"github.com/danielhkuo/project51/db"
	"github.com/danielhkuo/project51/events"
	"github.com/danielhkuo/project51/geo"
	"github.com/danielhkuo/project51/middleware"
	"github.com/danielhkuo/project51/router"
	"github.com/danielhkuo/project51/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	voteStore, err := store.New(dbConn, cfg.DatabaseType)
	if err != nil {
		slog.Error("store setup failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if count, err := voteStore.Count(ctx); err == nil {
		slog.Info("Database schema ready", "type", cfg.DatabaseType, "votes", humanize.Comma(count))
	}

	statsCache, err := newCache(ctx, cfg)
	if err != nil {
		slog.Error("cache setup failed", "error", err)
		os.Exit(1)
	}
	defer statsCache.Close()

	publisher, err := newPublisher(cfg)
	if err != nil {
		slog.Error("event publisher setup failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:     voteStore,
		Config:    cfg,
		Cache:     statsCache,
		Publisher: publisher,
		Locator:   geo.NewChain(cfg.GeoLookupURL, cfg.GeoLookupTimeout),
	})

	// Create server
	server := http.Server{
		Handler:           middleware.WithRequestID(middleware.CORS(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "system", cfg.SystemName)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return
	}

	<-shutdownDone
	slog.Info("Server closed")
}

func newCache(ctx context.Context, cfg cliparse.Config) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		slog.Info("using in-memory tally cache", "ttl", cfg.StatsCacheTTL)
		return cache.NewMemoryCache(time.Minute), nil
	}

	c, err := cache.NewRedisCache(ctx, cfg.RedisURL, "project51:")
	if err != nil {
		return nil, err
	}
	slog.Info("using redis tally cache", "ttl", cfg.StatsCacheTTL)
	return c, nil
}

func newPublisher(cfg cliparse.Config) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NopPublisher{}, nil
	}

	p, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, err
	}
	slog.Info("publishing vote events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return p, nil
}
