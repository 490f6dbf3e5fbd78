package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pillsync/pillsync-api/aiassist"
	"github.com/pillsync/pillsync-api/config"
	"github.com/pillsync/pillsync-api/evidence"
	"github.com/pillsync/pillsync-api/handlers"
	"github.com/pillsync/pillsync-api/health"
	"github.com/pillsync/pillsync-api/logging"
	"github.com/pillsync/pillsync-api/openfda"
	"github.com/pillsync/pillsync-api/pills"
	"github.com/pillsync/pillsync-api/rxnav"
	"github.com/pillsync/pillsync-api/scheduler"
	"github.com/pillsync/pillsync-api/server"
	"github.com/pillsync/pillsync-api/triage"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := logging.Init(logging.Options{
		Dir:            cfg.LogDir,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
	}); err != nil {
		logging.Error("Failed to initialize logging", "error", err)
		os.Exit(1)
	}

	rxnavClient, err := rxnav.NewClient(cfg.RxNavBaseURL, cfg.UpstreamTimeout, cfg.ResolverCache)
	if err != nil {
		logging.Error("Failed to create RxNav client", "error", err)
		os.Exit(1)
	}
	openfdaClient := openfda.NewClient(cfg.OpenFDABaseURL, cfg.UpstreamTimeout)

	// nil without an API key; the deterministic engines carry the service
	aiClient := aiassist.New(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.EmbModel)
	if aiClient == nil {
		logging.Info("OPENAI_API_KEY not set, running without embeddings and LLM summaries")
	}

	index := newEvidenceIndex(aiClient)
	sched := scheduler.NewScheduler(index)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	opts := []triage.CheckerOption{
		triage.WithLabelSource(openfdaClient),
		triage.WithResolverWorkers(cfg.ResolverWorkers),
	}
	if index.Enabled() {
		opts = append(opts, triage.WithEvidenceSearch(index))
	}
	if aiClient != nil {
		opts = append(opts, triage.WithSummarizer(aiClient))
	}
	checker := triage.NewChecker(rxnavClient, rxnavClient, pills.Lookup{}, opts...)

	healthChecker := health.NewChecker(index, func() map[string]string {
		return map[string]string{
			"rxnav":   rxnavClient.BreakerState(),
			"openfda": openfdaClient.BreakerState(),
		}
	})

	srv := server.NewServer(cfg, handlers.NewHandler(checker, healthChecker))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}

// newEvidenceIndex builds the index over the optional embedder. A nil
// *aiassist.Client must become a nil interface, not a typed nil.
func newEvidenceIndex(aiClient *aiassist.Client) *evidence.Index {
	if aiClient == nil {
		return evidence.NewIndex(nil)
	}
	return evidence.NewIndex(aiClient)
}
