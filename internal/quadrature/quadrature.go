// Package quadrature provides adaptive numerical integration built on
// fixed-order Gauss-Legendre panels.
//
// Each panel is evaluated at two orders; the difference between the two
// estimates drives interval bisection until the local error share fits the
// requested tolerance. Double extends the scheme to iterated 2D integrals
// with variable inner bounds.
package quadrature

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Panel orders for the low and high Gauss-Legendre estimates.
const (
	lowOrder  = 7
	highOrder = 15
)

// DefaultMaxDepth bounds interval bisection when Options.MaxDepth is zero.
const DefaultMaxDepth = 48

// ErrInvalidInterval indicates a reversed or non-finite integration interval.
var ErrInvalidInterval = errors.New("integration interval is invalid")

// ErrInvalidTolerance indicates a non-positive absolute tolerance.
var ErrInvalidTolerance = errors.New("tolerance must be positive")

// ErrNonFinite indicates the integrand produced NaN or an infinity.
var ErrNonFinite = errors.New("integrand produced a non-finite value")

// Options configures an adaptive integration.
type Options struct {
	// AbsTol is the absolute tolerance for the whole interval.
	AbsTol float64

	// MaxDepth caps bisection depth. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Result reports an integral value with its accuracy estimate.
type Result struct {
	// Value is the integral estimate.
	Value float64

	// ErrorEstimate bounds the achieved absolute error. It is informational:
	// exceeding the requested tolerance (for example after hitting the depth
	// cap) widens the estimate instead of failing the integration.
	ErrorEstimate float64

	// Evaluations counts integrand calls.
	Evaluations int
}

// Adaptive integrates f over [a, b] to the requested absolute tolerance.
func Adaptive(f func(float64) float64, a, b float64, opt Options) (Result, error) {
	if err := checkInterval(a, b); err != nil {
		return Result{}, err
	}
	if opt.AbsTol <= 0 {
		return Result{}, ErrInvalidTolerance
	}
	if a == b {
		return Result{}, nil
	}

	maxDepth := opt.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var res Result
	if err := bisect(f, a, b, opt.AbsTol, maxDepth, &res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// bisect accumulates one panel or splits it in half, giving each child half
// of the panel's tolerance share.
func bisect(f func(float64) float64, a, b, tol float64, depth int, res *Result) error {
	low := quad.Fixed(f, a, b, lowOrder, quad.Legendre{}, 0)
	high := quad.Fixed(f, a, b, highOrder, quad.Legendre{}, 0)
	res.Evaluations += lowOrder + highOrder

	if math.IsNaN(high) || math.IsInf(high, 0) {
		return ErrNonFinite
	}

	est := math.Abs(high - low)
	if est <= tol || depth <= 1 {
		res.Value += high
		res.ErrorEstimate += est
		return nil
	}

	mid := a + (b-a)/2
	if err := bisect(f, a, mid, tol/2, depth-1, res); err != nil {
		return err
	}
	return bisect(f, mid, b, tol/2, depth-1, res)
}

// Double integrates f over the region a <= x <= b, lower(x) <= y <= upper(x).
//
// The outer integral runs adaptively over x; at each abscissa the inner
// integral over y runs adaptively to the same tolerance. The reported error
// estimate combines the outer estimate with the worst inner estimate scaled
// by the outer width.
func Double(f func(x, y float64) float64, a, b float64, lower, upper func(float64) float64, opt Options) (Result, error) {
	if lower == nil || upper == nil {
		return Result{}, errors.New("inner bounds are required")
	}

	var innerErr error
	var maxInnerEst float64
	innerEvals := 0

	outer := func(x float64) float64 {
		if innerErr != nil {
			return 0
		}
		inner, err := Adaptive(func(y float64) float64 { return f(x, y) }, lower(x), upper(x), opt)
		if err != nil {
			innerErr = err
			return 0
		}
		maxInnerEst = math.Max(maxInnerEst, inner.ErrorEstimate)
		innerEvals += inner.Evaluations
		return inner.Value
	}

	res, err := Adaptive(outer, a, b, opt)
	if err != nil {
		return Result{}, err
	}
	if innerErr != nil {
		return Result{}, innerErr
	}

	res.Evaluations += innerEvals
	res.ErrorEstimate += (b - a) * maxInnerEst
	return res, nil
}

// checkInterval validates integration bounds.
func checkInterval(a, b float64) error {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return ErrInvalidInterval
	}
	if a > b {
		return ErrInvalidInterval
	}
	return nil
}
