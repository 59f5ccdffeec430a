// ABOUTME: Loads a rainfall source into the store with retry and a circuit breaker
// ABOUTME: Run() reloads periodically; a failed reload keeps the previous snapshot

package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/Eswari2225/DropSaviors/backend/metrics"
	"github.com/Eswari2225/DropSaviors/backend/models"
)

// ErrEmptyDataset means a source loaded successfully but returned no rows.
var ErrEmptyDataset = errors.New("rainfall source returned no observations")

type LoaderOptions struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration

	// Consecutive failed loads before the breaker opens, and how long it stays open
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	Metrics *metrics.Recorder
	// OnSwap runs after a new snapshot is installed
	OnSwap func(*Snapshot)
}

func (o *LoaderOptions) withDefaults() {
	if o.InitialInterval <= 0 {
		o.InitialInterval = 500 * time.Millisecond
	}
	if o.MaxElapsedTime <= 0 {
		o.MaxElapsedTime = 30 * time.Second
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = 5
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = time.Minute
	}
}

type Loader struct {
	source  Source
	store   *Store
	breaker *gobreaker.CircuitBreaker
	opts    LoaderOptions
}

func NewLoader(source Source, store *Store, opts LoaderOptions) *Loader {
	opts.withDefaults()
	failures := opts.BreakerFailures
	return &Loader{
		source: source,
		store:  store,
		opts:   opts,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "dataset-" + source.Name(),
			Timeout: opts.BreakerTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("Dataset breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// LoadOnce fetches the source, retrying transient failures, and swaps in a
// new snapshot on success. On failure the store is left untouched.
func (l *Loader) LoadOnce(ctx context.Context) (*Snapshot, error) {
	name := l.source.Name()
	var observations []models.Observation
	attempts := 0

	operation := func() error {
		attempts++
		out, err := l.breaker.Execute(func() (interface{}, error) {
			return l.source.Load(ctx)
		})
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) ||
				errors.Is(err, ErrMissingColumns) {
				return backoff.Permanent(err)
			}
			slog.Warn("Dataset load attempt failed", "source", name, "attempt", attempts, "error", err)
			return err
		}
		observations = out.([]models.Observation)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = l.opts.InitialInterval
	bo.MaxElapsedTime = l.opts.MaxElapsedTime

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, l.opts.MaxRetries), ctx)); err != nil {
		l.opts.Metrics.DatasetLoad(name, "failure")
		return nil, fmt.Errorf("loading %s dataset after %d attempts: %w", name, attempts, err)
	}
	if len(observations) == 0 {
		l.opts.Metrics.DatasetLoad(name, "empty")
		return nil, fmt.Errorf("loading %s dataset: %w", name, ErrEmptyDataset)
	}

	snap := NewSnapshot(name, observations, time.Now().UTC())
	l.store.Swap(snap)
	l.opts.Metrics.DatasetLoad(name, "success")
	l.opts.Metrics.DatasetSize(snap.Len())
	if l.opts.OnSwap != nil {
		l.opts.OnSwap(snap)
	}

	status := snap.Status()
	slog.Info("Dataset loaded",
		"source", name,
		"districts", status.Districts,
		"stations", status.Stations,
		"observations", status.Observations,
		"attempts", attempts,
	)
	return snap, nil
}

// Run reloads every interval until ctx is done.
func (l *Loader) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := l.LoadOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Dataset reload failed, keeping previous snapshot",
					"source", l.source.Name(),
					"loaded_at", l.store.Current().LoadedAt(),
					"error", err,
				)
			}
		}
	}
}
