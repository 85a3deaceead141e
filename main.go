package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"league_results_renderer/internal/cache"
	"league_results_renderer/internal/config"
	"league_results_renderer/internal/leagueapi"
	"league_results_renderer/internal/logging"
	"league_results_renderer/internal/metrics"
	"league_results_renderer/internal/server"
	"league_results_renderer/internal/widgets"
)

func newCache(ctx context.Context, cfg config.Config, log *logrus.Entry) (cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		c, client, err := cache.DialRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("prefix", cfg.RedisPrefix).Info("using redis response cache")
		return c, func() { client.Close() }, nil
	case config.CacheMemory:
		return cache.NewMemory(), func() {}, nil
	default:
		return cache.Nop{}, func() {}, nil
	}
}

func main() {
	configPath := flag.String("config", "", "path to an HCL config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logging.NewLogger("league-widgets", cfg.LogLevel, cfg.LogFormat, os.Stdout)

	display, err := cfg.Display()
	if err != nil {
		log.WithError(err).Fatal("invalid display settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	responseCache, closeCache, err := newCache(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up response cache")
	}
	defer closeCache()

	m := metrics.New()
	client := leagueapi.NewClient(cfg.APIBaseURL,
		leagueapi.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		leagueapi.WithCache(responseCache, cfg.CacheTTL),
		leagueapi.WithMetrics(m),
		leagueapi.WithLogger(log),
	)
	srv := server.New(client, widgets.Builder{Display: display}, m, log)

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown did not complete")
		}
	}()

	log.WithFields(logrus.Fields{
		"listen":       cfg.Listen,
		"api_base_url": cfg.APIBaseURL,
		"cache":        cfg.CacheBackend,
	}).Info("starting widget server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}
