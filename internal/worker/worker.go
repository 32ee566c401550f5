package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"starmap/internal/metrics"
	"starmap/internal/system"
)

// ErrExhausted is returned once every allowed attempt has failed
var ErrExhausted = errors.New("star system generation exhausted")

const (
	DefaultAttemptTimeout = 50 * time.Millisecond
	DefaultMaxAttempts    = 64
)

// Config bounds the retry loop.
// AttemptTimeout <= 0 disables the per-attempt deadline; MaxAttempts <= 0 retries forever.
type Config struct {
	AttemptTimeout time.Duration
	MaxAttempts    int
}

// Worker runs the system generator in its own goroutine per attempt and
// retries attempts that time out or cannot satisfy the orbit constraints.
type Worker struct {
	generator *system.Generator
	config    Config
	metrics   *metrics.Collector
	logger    *slog.Logger

	mu    sync.Mutex
	seeds *rand.Rand
}

// New creates a worker whose attempts draw from generators seeded off seed
func New(generator *system.Generator, config Config, seed uint64, collector *metrics.Collector, logger *slog.Logger) *Worker {
	logger.Debug("Initializing generation worker",
		"attempt_timeout", config.AttemptTimeout,
		"max_attempts", config.MaxAttempts,
		"seed", seed,
	)

	return &Worker{
		generator: generator,
		config:    config,
		metrics:   collector,
		logger:    logger,
		seeds:     rand.New(rand.NewPCG(seed, seed^0xda942042e4dd58b5)),
	}
}

type attemptResult struct {
	data *system.Data
	err  error
}

// Generate blocks until one attempt produces a system, the attempt limit is
// reached, or ctx is done.
func (w *Worker) Generate(ctx context.Context) (*system.Data, error) {
	logger := w.logger.With("component", "generation_worker", "operation", "generate")
	start := time.Now()

	var lastErr error
	for attempt := 1; w.config.MaxAttempts <= 0 || attempt <= w.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := w.attempt(ctx, w.nextSource())
		switch {
		case err == nil:
			w.metrics.RecordAttempt(metrics.OutcomeOK)
			w.metrics.RecordGeneration(time.Since(start))
			if attempt > 1 {
				logger.Debug("Star system generated after retries", "attempts", attempt)
			}
			return data, nil

		case ctx.Err() != nil:
			return nil, ctx.Err()

		case errors.Is(err, context.DeadlineExceeded):
			w.metrics.RecordAttempt(metrics.OutcomeTimeout)
			logger.Debug("Generation attempt timed out", "attempt", attempt, "timeout", w.config.AttemptTimeout)

		case errors.Is(err, system.ErrUnsatisfiable):
			w.metrics.RecordAttempt(metrics.OutcomeUnsatisfiable)
			logger.Debug("Generation attempt could not place orbits", "attempt", attempt, "error", err)

		default:
			w.metrics.RecordAttempt(metrics.OutcomeError)
			logger.Error("Generation attempt failed", "attempt", attempt, "error", err)
			return nil, fmt.Errorf("failed to generate star system: %w", err)
		}
		lastErr = err
	}

	w.metrics.RecordExhausted()
	logger.Warn("Star system generation exhausted", "attempts", w.config.MaxAttempts, "error", lastErr)
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, w.config.MaxAttempts, lastErr)
}

// attempt runs one generation under the per-attempt deadline. The generator
// observes the deadline itself, so an abandoned attempt stops drawing promptly.
func (w *Worker) attempt(ctx context.Context, rng *rand.Rand) (*system.Data, error) {
	attemptCtx, cancel := ctx, context.CancelFunc(func() {})
	if w.config.AttemptTimeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, w.config.AttemptTimeout)
	}
	defer cancel()

	result := make(chan attemptResult, 1)
	go func() {
		data, err := w.generator.Generate(attemptCtx, rng)
		result <- attemptResult{data: data, err: err}
	}()

	select {
	case r := <-result:
		return r.data, r.err
	case <-attemptCtx.Done():
		return nil, attemptCtx.Err()
	}
}

func (w *Worker) nextSource() *rand.Rand {
	w.mu.Lock()
	defer w.mu.Unlock()
	return rand.New(rand.NewPCG(w.seeds.Uint64(), w.seeds.Uint64()))
}
