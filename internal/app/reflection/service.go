package reflection

import (
	"context"
	"strings"
	"time"

	"github.com/quillnotes/reflect-api/internal/adapters/storage/memory"
	"github.com/quillnotes/reflect-api/internal/app/modelflow"
	"github.com/quillnotes/reflect-api/internal/domain"
	"github.com/quillnotes/reflect-api/internal/observability"
)

// Service owns the full lifecycle of a reflection request:
// validate → rate-limit → cache lookup → orchestrate model calls →
// classify failures → cache the success. One Service exists per process,
// created at startup; its janitor goroutine stops with the shutdown
// context.
type Service struct {
	cache           *memory.ReflectionCache
	limiter         *memory.RateLimiter
	orchestrator    *modelflow.Orchestrator
	metrics         *observability.Metrics
	cacheTTL        time.Duration
	providerTimeout time.Duration
}

func NewService(
	cache *memory.ReflectionCache,
	limiter *memory.RateLimiter,
	orchestrator *modelflow.Orchestrator,
	metrics *observability.Metrics,
	cacheTTL time.Duration,
	providerTimeout time.Duration,
) *Service {
	return &Service{
		cache:           cache,
		limiter:         limiter,
		orchestrator:    orchestrator,
		metrics:         metrics,
		cacheTTL:        cacheTTL,
		providerTimeout: providerTimeout,
	}
}

// Reflect handles one journal entry from clientID. Every failure path
// returns a structured *domain.ReflectionError; this method never panics
// the request out.
//
// Concurrent identical requests are not coalesced: each miss proceeds
// independently to the orchestrator.
func (s *Service) Reflect(
	ctx context.Context,
	clientID string,
	req domain.ReflectionRequest,
) (*domain.Reflection, *domain.ReflectionError) {
	start := time.Now()
	defer func() {
		s.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	}()

	log := observability.LoggerFromContext(ctx).With("client_id", clientID)

	if verr := Validate(req.Content); verr != nil {
		log.Info("entry rejected", "reason", verr.Message)
		return nil, s.fail(verr)
	}

	if ok, retryAfter := s.limiter.Admit(clientID); !ok {
		s.metrics.RateLimited.Inc()
		log.Info("rate limited", "retry_after_s", retryAfter)
		return nil, s.fail(domain.NewRateLimitError(retryAfter))
	}

	trimmed := strings.TrimSpace(req.Content)
	key := memory.HashContent(trimmed)

	if cached, ok := s.cache.Get(key); ok {
		s.metrics.CacheHits.Inc()
		s.metrics.Requests.WithLabelValues("success").Inc()
		log.Info("reflection served from cache", "content_hash", key)
		return &cached, nil
	}
	s.metrics.CacheMisses.Inc()

	resp, err := s.orchestrator.Reflect(ctx, trimmed, req.Preferences)
	if err != nil {
		rerr := Classify(err, s.providerTimeout)
		log.Error("reflection failed",
			"content_hash", key,
			"code", rerr.Code,
			"error", err)
		return nil, s.fail(rerr)
	}

	s.cache.Put(key, *resp, s.cacheTTL)
	s.metrics.Requests.WithLabelValues("success").Inc()
	log.Info("reflection generated",
		"content_hash", key,
		"model", resp.Metadata.Model,
		"elapsed_ms", resp.Metadata.ProcessingTimeMs)

	return resp, nil
}

func (s *Service) fail(rerr *domain.ReflectionError) *domain.ReflectionError {
	s.metrics.Requests.WithLabelValues(string(rerr.Code)).Inc()
	return rerr
}

// RunJanitor blocks until ctx is cancelled, pruning rate-limit state once
// per window. Cache sweeping is not its job; that happens opportunistically
// inside the cache itself.
func (s *Service) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(memory.Window)
	defer ticker.Stop()

	log := observability.Logger()
	for {
		select {
		case <-ctx.Done():
			log.Info("janitor stopped")
			return
		case <-ticker.C:
			s.limiter.Prune()
			log.Debug("janitor pruned rate-limit state",
				"clients", s.limiter.Clients())
		}
	}
}
