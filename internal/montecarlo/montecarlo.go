// Package montecarlo estimates the equidistant boundary-point probability
// by simulation.
//
// Each trial draws one point from the region where the bottom edge is the
// nearest boundary edge and pairs it with an unconstrained point in the unit
// square. The trial succeeds when the perpendicular bisector of the pair
// meets the bottom edge inside [0,1]. The estimate is the fraction of
// successful trials.
package montecarlo

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/equidistant/internal/geometry"
)

// sampleBatch is the number of unit-square draws per rejection round.
const sampleBatch = 4096

// ErrInvalidSampleCount indicates a non-positive sample count.
var ErrInvalidSampleCount = errors.New("sample count must be positive")

// ErrSamplerStalled indicates the rejection sampler hit its round cap
// before accepting enough points. The region covers a quarter of the unit
// square, so this only happens with a broken random source.
var ErrSamplerStalled = errors.New("rejection sampler failed to accept enough points")

// ErrNoRetainedPairs indicates every drawn pair was excluded, leaving no
// denominator for the success fraction.
var ErrNoRetainedPairs = errors.New("no pairs retained for classification")

// ErrPairLengthMismatch indicates the two point sequences differ in length.
var ErrPairLengthMismatch = errors.New("point sequences must have equal length")

// Request configures a simulation run.
//
// # Determinism
//
// Estimate is deterministic with respect to Seed and Workers together.
// Each worker owns rand.New(rand.NewSource(Seed + shard index)), so the
// same Seed with a different Workers count is a different run.
type Request struct {
	// Samples is the number of point pairs to draw.
	Samples int

	// Seed initializes the pseudo-random sources.
	Seed int64

	// Workers shards the draw across goroutines. Values below 1 run a
	// single shard.
	Workers int
}

// PairCounts aggregates classification outcomes over a sequence of pairs.
type PairCounts struct {
	// Successes is the number of pairs whose bisector foot lands on the
	// bottom edge, endpoints included.
	Successes int

	// Retained is the number of pairs that were classified.
	Retained int

	// Excluded is the number of pairs dropped for near-equal x-coordinates.
	Excluded int
}

// Result reports the empirical success fraction for a run.
type Result struct {
	PairCounts

	// Probability is Successes / Retained.
	Probability float64

	// StdError is the binomial standard error of Probability.
	StdError float64
}

// Estimate runs the simulation described by req.
//
// Pairs whose x-coordinates differ by less than geometry.XTolerance are
// silently dropped from both numerator and denominator; asymptotically they
// are a measure-zero event and do not bias the estimate.
func Estimate(ctx context.Context, req Request) (Result, error) {
	if req.Samples <= 0 {
		return Result{}, ErrInvalidSampleCount
	}

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > req.Samples {
		workers = req.Samples
	}

	counts := make([]PairCounts, workers)
	share := req.Samples / workers
	remainder := req.Samples % workers

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		n := share
		if i == workers-1 {
			n += remainder
		}
		rng := rand.New(rand.NewSource(req.Seed + int64(i)))
		g.Go(func() error {
			shard, err := runShard(ctx, rng, n)
			if err != nil {
				return err
			}
			counts[i] = shard
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total PairCounts
	for _, c := range counts {
		total.Successes += c.Successes
		total.Retained += c.Retained
		total.Excluded += c.Excluded
	}
	if total.Retained == 0 {
		return Result{}, ErrNoRetainedPairs
	}

	p := float64(total.Successes) / float64(total.Retained)
	return Result{
		PairCounts:  total,
		Probability: p,
		StdError:    math.Sqrt(p * (1 - p) / float64(total.Retained)),
	}, nil
}

// runShard draws and classifies n pairs using the shard's own source.
func runShard(ctx context.Context, rng *rand.Rand, n int) (PairCounts, error) {
	first, err := SampleBottomRegion(ctx, rng, n)
	if err != nil {
		return PairCounts{}, err
	}

	second := make([]geometry.Point, n)
	for i := range second {
		second[i] = geometry.Point{X: rng.Float64(), Y: rng.Float64()}
	}

	return ClassifyPairs(first, second)
}

// SampleBottomRegion returns exactly n points uniformly distributed over the
// region where the bottom edge is the nearest boundary edge.
//
// It rejection-samples the unit square in batches and keeps region members.
// Acceptance is a constant 1/4, so any prefix of the accepted stream is
// itself uniform over the region and truncating to n preserves uniformity.
// The round cap bounds the loop; reaching it means the random source is not
// uniform and returns ErrSamplerStalled.
func SampleBottomRegion(ctx context.Context, rng *rand.Rand, n int) ([]geometry.Point, error) {
	if n <= 0 {
		return nil, ErrInvalidSampleCount
	}

	maxRounds := 40 * (n/sampleBatch + 1)
	accepted := make([]geometry.Point, 0, n)
	for round := 0; len(accepted) < n; round++ {
		if round >= maxRounds {
			return nil, ErrSamplerStalled
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i < sampleBatch; i++ {
			p := geometry.Point{X: rng.Float64(), Y: rng.Float64()}
			if geometry.InBottomRegion(p) {
				accepted = append(accepted, p)
			}
		}
	}
	return accepted[:n], nil
}

// ClassifyPairs computes classification counts over index-paired sequences.
func ClassifyPairs(first, second []geometry.Point) (PairCounts, error) {
	if len(first) != len(second) {
		return PairCounts{}, ErrPairLengthMismatch
	}

	var counts PairCounts
	for i := range first {
		a, ok := geometry.BisectorFoot(first[i], second[i])
		if !ok {
			counts.Excluded++
			continue
		}
		counts.Retained++
		if geometry.OnBottomEdge(a) {
			counts.Successes++
		}
	}
	return counts, nil
}
