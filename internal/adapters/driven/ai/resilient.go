package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/metrics"
)

// Default resilience values.
const (
	DefaultRetryBackoff     = 500 * time.Millisecond
	DefaultBreakerTimeout   = 30 * time.Second
	DefaultBreakerThreshold = 5
)

// Ensure the wrappers implement their ports.
var (
	_ driven.VisionService              = (*ResilientVision)(nil)
	_ driven.EmbeddingService           = (*ResilientEmbedding)(nil)
	_ driven.MultimodalEmbeddingService = (*ResilientMultimodal)(nil)
)

// ResilienceConfig bounds how an AI provider is called.
type ResilienceConfig struct {
	// RequestsPerSecond limits calls to the provider. 0 disables limiting.
	RequestsPerSecond float64

	// MaxRetries is the number of retries after a failed call.
	MaxRetries int

	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration

	// BreakerThreshold is the number of consecutive failures that opens
	// the circuit.
	BreakerThreshold uint32

	// BreakerTimeout is how long the circuit stays open.
	BreakerTimeout time.Duration
}

// guard applies rate limiting, retries and a circuit breaker to calls
// against one provider.
type guard struct {
	name       string
	cb         *gobreaker.CircuitBreaker[struct{}]
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

func newGuard(name string, cfg ResilienceConfig) *guard {
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.BreakerThreshold == 0 {
		cfg.BreakerThreshold = DefaultBreakerThreshold
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = DefaultBreakerTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	threshold := cfg.BreakerThreshold
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Caller mistakes say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || !isProviderFault(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &guard{
		name:       name,
		cb:         cb,
		limiter:    limiter,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
	}
}

// do runs fn until it succeeds, fails permanently or retries run out.
func (g *guard) do(ctx context.Context, op string, fn func(context.Context) error) error {
	start := time.Now()
	defer func() {
		metrics.AICallDuration.WithLabelValues(g.name, op).Observe(time.Since(start).Seconds())
	}()

	var err error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("%s %s: retry %d after %v", g.name, op, attempt, err)
			if werr := sleep(ctx, g.backoff*time.Duration(attempt)); werr != nil {
				break
			}
		}
		if g.limiter != nil {
			if werr := g.limiter.Wait(ctx); werr != nil {
				err = fmt.Errorf("%s: rate limiter: %w", g.name, werr)
				break
			}
		}

		_, err = g.cb.Execute(func() (struct{}, error) {
			return struct{}{}, fn(ctx)
		})
		if err == nil {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
			err = fmt.Errorf("%w: %s: %w", domain.ErrCircuitOpen, g.name, err)
			break
		}
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		if !isRetryable(ctx, err) {
			break
		}
	}

	metrics.AICallErrors.WithLabelValues(g.name, op).Inc()
	return err
}

// isProviderFault reports whether err reflects on the provider rather than
// on the request.
func isProviderFault(err error) bool {
	return !errors.Is(err, domain.ErrInvalidInput) &&
		!errors.Is(err, domain.ErrUnsupportedType) &&
		!errors.Is(err, context.Canceled)
}

func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return isProviderFault(err)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// ResilientVision wraps a VisionService with a guard.
type ResilientVision struct {
	next  driven.VisionService
	guard *guard
}

// NewResilientVision wraps next. name labels metrics and the breaker.
func NewResilientVision(next driven.VisionService, name string, cfg ResilienceConfig) *ResilientVision {
	return &ResilientVision{next: next, guard: newGuard(name, cfg)}
}

// Describe calls the wrapped service through the guard.
func (r *ResilientVision) Describe(ctx context.Context, content *domain.MediaContent, prompt string, opts driven.DescribeOptions) (string, error) {
	var out string
	err := r.guard.do(ctx, "describe", func(ctx context.Context) error {
		var err error
		out, err = r.next.Describe(ctx, content, prompt, opts)
		return err
	})
	return out, err
}

// ModelName returns the wrapped model name.
func (r *ResilientVision) ModelName() string { return r.next.ModelName() }

// Ping bypasses the guard so validation reports the raw error.
func (r *ResilientVision) Ping(ctx context.Context) error { return r.next.Ping(ctx) }

// Close closes the wrapped service.
func (r *ResilientVision) Close() error { return r.next.Close() }

// ResilientEmbedding wraps an EmbeddingService with a guard.
type ResilientEmbedding struct {
	next  driven.EmbeddingService
	guard *guard
}

// NewResilientEmbedding wraps next. name labels metrics and the breaker.
func NewResilientEmbedding(next driven.EmbeddingService, name string, cfg ResilienceConfig) *ResilientEmbedding {
	return &ResilientEmbedding{next: next, guard: newGuard(name, cfg)}
}

// Embed calls the wrapped service through the guard.
func (r *ResilientEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := r.guard.do(ctx, "embed", func(ctx context.Context) error {
		var err error
		out, err = r.next.Embed(ctx, text)
		return err
	})
	return out, err
}

// Dimensions returns the wrapped vector size.
func (r *ResilientEmbedding) Dimensions() int { return r.next.Dimensions() }

// ModelName returns the wrapped model name.
func (r *ResilientEmbedding) ModelName() string { return r.next.ModelName() }

// Ping bypasses the guard.
func (r *ResilientEmbedding) Ping(ctx context.Context) error { return r.next.Ping(ctx) }

// Close closes the wrapped service.
func (r *ResilientEmbedding) Close() error { return r.next.Close() }

// ResilientMultimodal wraps a MultimodalEmbeddingService with a guard.
type ResilientMultimodal struct {
	next  driven.MultimodalEmbeddingService
	guard *guard
}

// NewResilientMultimodal wraps next. name labels metrics and the breaker.
func NewResilientMultimodal(next driven.MultimodalEmbeddingService, name string, cfg ResilienceConfig) *ResilientMultimodal {
	return &ResilientMultimodal{next: next, guard: newGuard(name, cfg)}
}

// EmbedMultimodal calls the wrapped service through the guard.
func (r *ResilientMultimodal) EmbedMultimodal(ctx context.Context, content *domain.MediaContent, text string) ([]float32, error) {
	var out []float32
	err := r.guard.do(ctx, "embed_multimodal", func(ctx context.Context) error {
		var err error
		out, err = r.next.EmbedMultimodal(ctx, content, text)
		return err
	})
	return out, err
}

// ModelName returns the wrapped model name.
func (r *ResilientMultimodal) ModelName() string { return r.next.ModelName() }

// Ping bypasses the guard.
func (r *ResilientMultimodal) Ping(ctx context.Context) error { return r.next.Ping(ctx) }

// Close closes the wrapped service.
func (r *ResilientMultimodal) Close() error { return r.next.Close() }
