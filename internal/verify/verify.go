// Package verify cross-checks the two probability engines against each
// other.
//
// The Monte Carlo estimate and the exact evaluation target the same
// quantity; agreement within a few simulation standard errors is the
// system's end-to-end correctness signal.
package verify

import (
	"context"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/equidistant/internal/exact"
	"github.com/louisbranch/equidistant/internal/montecarlo"
	"github.com/louisbranch/equidistant/internal/random"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/louisbranch/equidistant/internal/verify"

// Defaults applied by Run for zero Config fields.
const (
	DefaultSamples       = 1000000
	DefaultWorkers       = 4
	DefaultMaxDivergence = 0.01
)

// Config controls a cross-check run.
type Config struct {
	// Samples is the number of simulated point pairs.
	Samples int

	// Seed makes the simulation deterministic. Zero draws a fresh
	// cryptographic seed.
	Seed int64

	// Workers shards the simulation.
	Workers int

	// Tolerance is the quadrature tolerance for the exact evaluation.
	// Zero uses the evaluator default.
	Tolerance float64

	// MaxDivergence is the largest acceptable absolute difference between
	// the two engines before the report flags disagreement.
	MaxDivergence float64
}

// Report captures both results and their agreement.
type Report struct {
	// Seed is the seed the simulation actually used.
	Seed int64

	Simulation montecarlo.Result
	Exact      exact.Result

	// Divergence is |simulated - exact|.
	Divergence float64

	// Agrees is true when Divergence is within the configured bound.
	Agrees bool
}

// Run executes both engines concurrently and compares their results.
//
// The engines share no state: each owns its random source or quadrature
// sub-call, so the only coordination is the final reduction.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Samples == 0 {
		cfg.Samples = DefaultSamples
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.MaxDivergence == 0 {
		cfg.MaxDivergence = DefaultMaxDivergence
	}
	if cfg.Seed == 0 {
		seed, err := random.NewSeed()
		if err != nil {
			return Report{}, err
		}
		cfg.Seed = seed
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "verify.Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("samples", cfg.Samples),
		attribute.Int64("seed", cfg.Seed),
	)

	var sim montecarlo.Result
	var ex exact.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sctx, span := tracer.Start(gctx, "montecarlo.Estimate")
		defer span.End()
		res, err := montecarlo.Estimate(sctx, montecarlo.Request{
			Samples: cfg.Samples,
			Seed:    cfg.Seed,
			Workers: cfg.Workers,
		})
		if err != nil {
			return err
		}
		sim = res
		return nil
	})
	g.Go(func() error {
		ectx, span := tracer.Start(gctx, "exact.Evaluate")
		defer span.End()
		res, err := exact.Evaluate(ectx, exact.Options{Tolerance: cfg.Tolerance})
		if err != nil {
			return err
		}
		ex = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	divergence := math.Abs(sim.Probability - ex.Probability)
	return Report{
		Seed:       cfg.Seed,
		Simulation: sim,
		Exact:      ex,
		Divergence: divergence,
		Agrees:     divergence <= cfg.MaxDivergence,
	}, nil
}
