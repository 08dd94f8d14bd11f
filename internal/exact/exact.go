// Package exact computes the equidistant boundary-point probability
// analytically.
//
// For a first point fixed in the bottom region, the area of valid second
// points is a closed-form circle-intersection expression. Integrating that
// area over the region and rescaling by its 1/4 share of the unit square
// yields the probability; the bottom region's triangular boundary has a
// corner at x = 0.5, so the integral splits into two sub-triangles.
package exact

import (
	"context"
	"errors"
	"math"

	"github.com/louisbranch/equidistant/internal/geometry"
	"github.com/louisbranch/equidistant/internal/quadrature"
)

// DefaultTolerance is the absolute quadrature tolerance when Options leaves
// it unset.
const DefaultTolerance = 1e-10

// accuracyThreshold is the largest acceptable combined error estimate.
const accuracyThreshold = 1e-8

// ErrAccuracy indicates the quadrature error estimate exceeded the
// acceptable threshold and the result cannot be trusted.
var ErrAccuracy = errors.New("integration error estimate above acceptable threshold")

// Options configures the evaluation.
type Options struct {
	// Tolerance is the absolute quadrature tolerance per sub-region.
	// Zero means DefaultTolerance.
	Tolerance float64
}

// Result reports the computed probability.
type Result struct {
	// Probability is the integrated, rescaled probability.
	Probability float64

	// ErrorEstimate bounds the absolute numerical error of Probability.
	ErrorEstimate float64

	// Evaluations counts valid-area evaluations across both sub-regions.
	Evaluations int
}

// ClosedForm returns the analytic value (1 + 2*pi - ln 4) / 12, roughly
// 0.4914075788. Evaluate must agree with it to the quadrature tolerance;
// it serves as the acceptance reference, not as an input.
func ClosedForm() float64 {
	return (1 + 2*math.Pi - math.Log(4)) / 12
}

// Evaluate integrates the valid area over the bottom region and rescales to
// the full-square probability.
//
// The factor 4 undoes the region's 1/4 area share: the same success rate
// holds in all four nearest-edge regions by symmetry.
func Evaluate(ctx context.Context, opt Options) (Result, error) {
	tol := opt.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if tol < 0 {
		return Result{}, quadrature.ErrInvalidTolerance
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	area := func(x, y float64) float64 {
		return geometry.ValidArea(geometry.Point{X: x, Y: y})
	}
	zero := func(float64) float64 { return 0 }
	qopt := quadrature.Options{AbsTol: tol}

	left, err := quadrature.Double(area, 0, 0.5, zero, func(x float64) float64 { return x }, qopt)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	right, err := quadrature.Double(area, 0.5, 1, zero, func(x float64) float64 { return 1 - x }, qopt)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Probability:   4 * (left.Value + right.Value),
		ErrorEstimate: 4 * (left.ErrorEstimate + right.ErrorEstimate),
		Evaluations:   left.Evaluations + right.Evaluations,
	}
	if res.ErrorEstimate > accuracyThreshold {
		return res, ErrAccuracy
	}
	return res, nil
}
