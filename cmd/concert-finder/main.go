package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yair/concert-finder/pkg/config"
	"github.com/yair/concert-finder/pkg/finder"
	"github.com/yair/concert-finder/pkg/integrations"
	"github.com/yair/concert-finder/pkg/interfaces"
	"github.com/yair/concert-finder/pkg/observability"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting concert finder")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Event search is only available with a Ticketmaster key; without one the
	// pipeline reports a configuration error on every search.
	var searcher finder.EventSearcher
	if cfg.APIs.Ticketmaster.APIKey != "" {
		tm, err := integrations.NewTicketmasterClient(integrations.TicketmasterConfig{
			APIKey: cfg.APIs.Ticketmaster.APIKey,
		}, logger)
		if err != nil {
			logger.Warn("failed to create Ticketmaster client", slog.String("error", err.Error()))
		} else {
			searcher = tm
		}
	} else {
		logger.Warn("Ticketmaster API key not configured, event search disabled")
	}

	// Last.fm is optional: without it, similar-artist expansion and
	// popularity ranking degrade with warnings.
	var similarity finder.SimilarityProvider
	var popularity integrations.PopularityProvider
	if cfg.APIs.LastFM.APIKey != "" {
		lastfm, err := integrations.NewLastFMClient(integrations.LastFMConfig{
			APIKey: cfg.APIs.LastFM.APIKey,
		}, logger)
		if err != nil {
			logger.Warn("failed to create Last.fm client", slog.String("error", err.Error()))
		} else {
			similarity = lastfm
			popularity = integrations.NewCachedPopularity(
				lastfm,
				time.Duration(cfg.Cache.PopularityTTLMinutes)*time.Minute,
				clock,
				metrics,
			)
		}
	} else {
		logger.Warn("Last.fm API key not configured, similarity and popularity disabled")
	}

	concertFinder := finder.New(searcher, similarity, popularity, finder.Config{
		SimilarArtistLimit: cfg.Search.SimilarArtistLimit,
		Clock:              clock,
		Logger:             logger,
		Metrics:            metrics,
	})

	searchHandler := interfaces.NewSearchHandler(concertFinder, logger)

	router := mux.NewRouter()
	searchHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	logger.Info("routes registered")
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, _ := route.GetPathTemplate()
		methods, _ := route.GetMethods()
		logger.Info("route", slog.Any("methods", methods), slog.String("path", path))
		return nil
	})

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
