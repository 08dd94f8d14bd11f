package exact

import (
	"context"
	"errors"
	"math"
	"testing"
)

// TestClosedFormValue pins the analytic constant.
func TestClosedFormValue(t *testing.T) {
	if got := ClosedForm(); math.Abs(got-0.4914075788) > 1e-10 {
		t.Fatalf("ClosedForm() = %.10f, want 0.4914075788", got)
	}
}

// TestEvaluateMatchesClosedForm checks the integrated probability against
// the analytic value to eight decimal places at the default tolerance.
func TestEvaluateMatchesClosedForm(t *testing.T) {
	res, err := Evaluate(context.Background(), Options{Tolerance: 1e-10})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if math.Abs(res.Probability-ClosedForm()) > 1e-8 {
		t.Fatalf("probability = %.12f, want %.12f within 1e-8", res.Probability, ClosedForm())
	}
	if res.ErrorEstimate <= 0 {
		t.Fatalf("error estimate = %v, want positive", res.ErrorEstimate)
	}
	if res.Evaluations == 0 {
		t.Fatal("expected integrand evaluations to be counted")
	}
}

// TestEvaluateDefaultTolerance verifies the zero Options path.
func TestEvaluateDefaultTolerance(t *testing.T) {
	res, err := Evaluate(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if math.Abs(res.Probability-ClosedForm()) > 1e-8 {
		t.Fatalf("probability = %.12f, want %.12f within 1e-8", res.Probability, ClosedForm())
	}
}

// TestEvaluateRejectsNegativeTolerance ensures invalid tolerances fail.
func TestEvaluateRejectsNegativeTolerance(t *testing.T) {
	if _, err := Evaluate(context.Background(), Options{Tolerance: -1}); err == nil {
		t.Fatal("expected error for negative tolerance")
	}
}

// TestEvaluateHonorsCancellation ensures a cancelled context aborts the
// evaluation.
func TestEvaluateHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Evaluate(ctx, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want %v", err, context.Canceled)
	}
}
