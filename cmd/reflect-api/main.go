package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/quillnotes/reflect-api/internal/adapters/http"
	"github.com/quillnotes/reflect-api/internal/adapters/llm"
	memstore "github.com/quillnotes/reflect-api/internal/adapters/storage/memory"
	"github.com/quillnotes/reflect-api/internal/app/modelflow"
	"github.com/quillnotes/reflect-api/internal/app/reflection"
	"github.com/quillnotes/reflect-api/internal/config"
	"github.com/quillnotes/reflect-api/internal/domain"
	"github.com/quillnotes/reflect-api/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		observability.Logger().Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	observability.Setup(cfg.LogLevel)
	log := observability.Logger()

	// Choose between mock and Gemini by ENV (useful for dev)
	var caller domain.ModelCaller
	if cfg.UseMockLLM {
		log.Info("using mock model caller")
		caller = llm.NewMockCaller()
	} else {
		log.Info("using Gemini model caller",
			"primary", cfg.PrimaryModel,
			"fallback", cfg.FallbackModel)
		caller, err = llm.NewGeminiCaller(ctx, cfg.GCPProject, cfg.GCPLocation)
		if err != nil {
			log.Error("initializing Gemini caller", "error", err)
			os.Exit(1)
		}
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	cache := memstore.NewReflectionCache(nil)
	limiter := memstore.NewRateLimiter(cfg.RateLimitPerMinute, nil)
	orchestrator := modelflow.NewOrchestrator(
		caller, cfg.PrimaryModel, cfg.FallbackModel, cfg.ProviderTimeout, metrics)
	svc := reflection.NewService(
		cache, limiter, orchestrator, metrics, cfg.CacheTTL, cfg.ProviderTimeout)

	go svc.RunJanitor(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpadapter.NewServer(svc),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("reflect API listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server shut down")
}
