// Package equidistant parses command flags and runs the probability
// cross-check.
package equidistant

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/equidistant/internal/exact"
	entrypoint "github.com/louisbranch/equidistant/internal/platform/cmd"
	"github.com/louisbranch/equidistant/internal/verify"
)

// Config holds command configuration.
type Config struct {
	Samples   int     `env:"EQUIDISTANT_SAMPLES" envDefault:"1000000"`
	Seed      int64   `env:"EQUIDISTANT_SEED" envDefault:"0"`
	Workers   int     `env:"EQUIDISTANT_WORKERS" envDefault:"4"`
	Tolerance float64 `env:"EQUIDISTANT_TOLERANCE" envDefault:"1e-10"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Number of simulated point pairs")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Simulation seed (0 draws a fresh one)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Simulation worker count")
	fs.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "Quadrature absolute tolerance")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the cross-check and writes the report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEquidistant, func(ctx context.Context) error {
		report, err := verify.Run(ctx, verify.Config{
			Samples:   cfg.Samples,
			Seed:      cfg.Seed,
			Workers:   cfg.Workers,
			Tolerance: cfg.Tolerance,
		})
		if err != nil {
			return err
		}
		return writeReport(out, report)
	})
}

// writeReport renders a cross-check report.
func writeReport(out io.Writer, report verify.Report) error {
	sim := report.Simulation
	_, err := fmt.Fprintf(out,
		"seed:       %d\n"+
			"simulated:  %.10f (stderr %.2e, %d pairs, %d excluded)\n"+
			"exact:      %.10f (error estimate %.2e)\n"+
			"closed form %.10f\n"+
			"divergence: %.2e (agrees: %v)\n",
		report.Seed,
		sim.Probability, sim.StdError, sim.Retained, sim.Excluded,
		report.Exact.Probability, report.Exact.ErrorEstimate,
		exact.ClosedForm(),
		report.Divergence, report.Agrees,
	)
	return err
}
