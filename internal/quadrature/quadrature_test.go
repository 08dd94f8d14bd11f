package quadrature

import (
	"errors"
	"math"
	"testing"
)

// TestAdaptivePolynomial integrates x^2, which the panel rule captures
// exactly.
func TestAdaptivePolynomial(t *testing.T) {
	res, err := Adaptive(func(x float64) float64 { return x * x }, 0, 1, Options{AbsTol: 1e-12})
	if err != nil {
		t.Fatalf("Adaptive returned error: %v", err)
	}
	if math.Abs(res.Value-1.0/3.0) > 1e-14 {
		t.Fatalf("integral = %v, want 1/3", res.Value)
	}
	if res.ErrorEstimate > 1e-12 {
		t.Fatalf("error estimate = %v, want <= 1e-12", res.ErrorEstimate)
	}
	if res.Evaluations == 0 {
		t.Fatal("expected integrand evaluations to be counted")
	}
}

// TestAdaptiveSine integrates sin over [0, pi].
func TestAdaptiveSine(t *testing.T) {
	res, err := Adaptive(math.Sin, 0, math.Pi, Options{AbsTol: 1e-12})
	if err != nil {
		t.Fatalf("Adaptive returned error: %v", err)
	}
	if math.Abs(res.Value-2) > 1e-12 {
		t.Fatalf("integral = %v, want 2", res.Value)
	}
}

// TestAdaptiveSqrtSingularity checks subdivision near an endpoint where the
// integrand's derivative blows up.
func TestAdaptiveSqrtSingularity(t *testing.T) {
	res, err := Adaptive(math.Sqrt, 0, 1, Options{AbsTol: 1e-12})
	if err != nil {
		t.Fatalf("Adaptive returned error: %v", err)
	}
	if math.Abs(res.Value-2.0/3.0) > 1e-10 {
		t.Fatalf("integral = %v, want 2/3 within 1e-10", res.Value)
	}
}

// TestAdaptiveEmptyInterval returns zero for a == b.
func TestAdaptiveEmptyInterval(t *testing.T) {
	res, err := Adaptive(math.Sin, 1, 1, Options{AbsTol: 1e-10})
	if err != nil {
		t.Fatalf("Adaptive returned error: %v", err)
	}
	if res.Value != 0 || res.Evaluations != 0 {
		t.Fatalf("expected zero result, got %+v", res)
	}
}

// TestAdaptiveRejectsBadInputs covers reversed intervals, non-finite bounds
// and non-positive tolerances.
func TestAdaptiveRejectsBadInputs(t *testing.T) {
	if _, err := Adaptive(math.Sin, 1, 0, Options{AbsTol: 1e-10}); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("reversed interval error = %v, want %v", err, ErrInvalidInterval)
	}
	if _, err := Adaptive(math.Sin, 0, math.Inf(1), Options{AbsTol: 1e-10}); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("infinite bound error = %v, want %v", err, ErrInvalidInterval)
	}
	if _, err := Adaptive(math.Sin, 0, 1, Options{}); !errors.Is(err, ErrInvalidTolerance) {
		t.Fatalf("zero tolerance error = %v, want %v", err, ErrInvalidTolerance)
	}
}

// TestAdaptiveReportsNonFiniteIntegrand surfaces NaN from the integrand as
// an error instead of a silent NaN result.
func TestAdaptiveReportsNonFiniteIntegrand(t *testing.T) {
	f := func(x float64) float64 { return math.Acos(1 + x) }
	if _, err := Adaptive(f, 0, 1, Options{AbsTol: 1e-10}); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("error = %v, want %v", err, ErrNonFinite)
	}
}

// TestDoubleOverTriangle integrates x*y over the triangle 0<=y<=x<=1, which
// evaluates to 1/8.
func TestDoubleOverTriangle(t *testing.T) {
	res, err := Double(
		func(x, y float64) float64 { return x * y },
		0, 1,
		func(float64) float64 { return 0 },
		func(x float64) float64 { return x },
		Options{AbsTol: 1e-12},
	)
	if err != nil {
		t.Fatalf("Double returned error: %v", err)
	}
	if math.Abs(res.Value-1.0/8.0) > 1e-11 {
		t.Fatalf("integral = %v, want 1/8", res.Value)
	}
}

// TestDoubleConstantArea recovers the area of the triangle from a constant
// integrand.
func TestDoubleConstantArea(t *testing.T) {
	res, err := Double(
		func(x, y float64) float64 { return 1 },
		0, 1,
		func(float64) float64 { return 0 },
		func(x float64) float64 { return x },
		Options{AbsTol: 1e-12},
	)
	if err != nil {
		t.Fatalf("Double returned error: %v", err)
	}
	if math.Abs(res.Value-0.5) > 1e-12 {
		t.Fatalf("integral = %v, want 0.5", res.Value)
	}
}

// TestDoubleRequiresBounds rejects missing inner bound functions.
func TestDoubleRequiresBounds(t *testing.T) {
	_, err := Double(func(x, y float64) float64 { return 1 }, 0, 1, nil, nil, Options{AbsTol: 1e-10})
	if err == nil {
		t.Fatal("expected error for nil bounds")
	}
}
