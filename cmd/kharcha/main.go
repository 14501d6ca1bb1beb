package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kharcha/internal/classifier"
	"kharcha/internal/config"
	"kharcha/internal/events"
	apphttp "kharcha/internal/http"
	applog "kharcha/internal/log"
	"kharcha/internal/parser"
	"kharcha/internal/pipeline"
	"kharcha/internal/session"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	cls, err := buildClassifier(cfg)
	if err != nil {
		logger.WithComponent(applog.ComponentClassifier).Error("Failed to load classifier rules",
			applog.FieldError, err, "rules_file", cfg.ClassifierRulesFile)
		os.Exit(1)
	}

	var publisher pipeline.Publisher
	var eventsClient *events.Client
	if cfg.EventsEnabled() {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The pipeline works without the event stream; don't refuse
			// to start over a broker outage.
			logger.WithComponent(applog.ComponentEvents).Warn("AMQP unavailable, continuing without event publishing",
				applog.FieldError, err)
		} else {
			publisher = eventsClient
			defer eventsClient.Close()
		}
	}

	pipe := pipeline.New(parser.New(cfg.DefaultCurrency), cls, publisher)
	sessions := session.NewManager(cfg.SessionTTL)

	srv := apphttp.NewServer(":"+cfg.Port, sessions, pipe)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting kharcha server",
			"port", cfg.Port,
			"default_currency", cfg.DefaultCurrency,
			"session_ttl", cfg.SessionTTL.String(),
			"events_enabled", publisher != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := sessions.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func buildClassifier(cfg *config.Config) (*classifier.Classifier, error) {
	if cfg.ClassifierRulesFile != "" {
		return classifier.NewFromFile(cfg.ClassifierRulesFile)
	}
	return classifier.New(), nil
}
