package modelflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quillnotes/reflect-api/internal/domain"
	"github.com/quillnotes/reflect-api/internal/observability"
)

// Orchestrator runs one model call sequence per reflection: the primary
// model first, then on any failure exactly one attempt against the
// fallback model with the identical prompt. The fallback's error is the
// one propagated; no further retries happen here. Stateless between calls.
type Orchestrator struct {
	caller   domain.ModelCaller
	primary  string
	fallback string
	timeout  time.Duration
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewOrchestrator(
	caller domain.ModelCaller,
	primary, fallback string,
	timeout time.Duration,
	metrics *observability.Metrics,
) *Orchestrator {
	return &Orchestrator{
		caller:   caller,
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Reflect produces a reflection for the given (already validated, trimmed)
// content. Metadata records whichever model actually answered.
func (o *Orchestrator) Reflect(
	ctx context.Context,
	content string,
	prefs map[string]any,
) (*domain.Reflection, error) {
	log := observability.LoggerFromContext(ctx)
	start := o.now()
	prompt := BuildPrompt(content, prefs)

	model := o.primary
	parts, err := o.attempt(ctx, o.primary, prompt)
	if err != nil {
		// Caller gone: abandon instead of burning a fallback call.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn("primary model failed, trying fallback",
			"model", o.primary,
			"error", err)
		o.metrics.ModelFallbacks.Inc()

		model = o.fallback
		parts, err = o.attempt(ctx, o.fallback, prompt)
		if err != nil {
			log.Error("fallback model failed",
				"model", o.fallback,
				"error", err)
			return nil, err
		}
	}

	done := o.now()
	return &domain.Reflection{
		Summary:    parts.Summary,
		Pattern:    parts.Pattern,
		Suggestion: parts.Suggestion,
		Metadata: domain.Metadata{
			Model:            model,
			ProcessedAt:      done,
			ProcessingTimeMs: done.Sub(start).Milliseconds(),
		},
	}, nil
}

// attempt runs a single model call under the provider timeout. A deadline
// hit is reported with a "request timeout after Nms" message so the error
// classifier lands on the timeout category.
func (o *Orchestrator) attempt(ctx context.Context, model string, p Prompt) (domain.ModelParts, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	parts, err := o.caller.Call(callCtx, model, p.System, p.User)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return domain.ModelParts{}, fmt.Errorf("request timeout after %dms", o.timeout.Milliseconds())
	}
	return parts, err
}
