package main

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/polyenv/polyenv/internal/envelope"
	"github.com/polyenv/polyenv/internal/store"
)

var (
	runDegree      int
	runDomain      string
	runPolys       []string
	runInterpolant bool
	runWeighted    bool
	runResidualTol float64
	runDataDir     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build an SOS envelope instance",
	Long: `Registers the given polynomials, assembles the dualized constraint
system and composite barrier, and persists the run for an external
interior-point solver. Polynomials are ascending coefficient vectors
unless --interpolant is set, in which case they are values at the
interpolation nodes. All vectors must have exactly 2*degree+1 entries.`,
	RunE: runBuild,
}

func init() {
	runCmd.Flags().IntVar(&runDegree, "degree", 2, "Max polynomial degree d (U = 2d+1)")
	runCmd.Flags().StringVar(&runDomain, "domain", "-1,1", "Domain interval as \"min,max\"")
	runCmd.Flags().StringArrayVar(&runPolys, "poly", nil, "Polynomial vector as \"c0,c1,...\" (repeatable, required)")
	runCmd.Flags().BoolVar(&runInterpolant, "interpolant", false, "Treat input vectors as interpolant (nodal) coordinates")
	runCmd.Flags().BoolVar(&runWeighted, "weighted", false, "Add the 1-x^2 weighted SOS cone to each barrier block")
	runCmd.Flags().Float64Var(&runResidualTol, "residual-tol", 0, "Basis inversion residual tolerance (0 = default)")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "./data", "Base directory for run storage")

	runCmd.MarkFlagRequired("poly")
	rootCmd.AddCommand(runCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	dom, err := parseInterval(runDomain)
	if err != nil {
		return fmt.Errorf("invalid --domain: %w", err)
	}

	cfg := envelope.Config{
		NumVariables:     1,
		MaxDegree:        runDegree,
		Domain:           []envelope.Interval{dom},
		InterpolantInput: runInterpolant,
		Weighted:         runWeighted,
		ResidualTol:      runResidualTol,
	}

	prob, err := envelope.New(cfg, logger)
	if err != nil {
		return err
	}

	slog.Info("Building envelope instance",
		"degree", runDegree,
		"dimension", prob.Dimension(),
		"polynomials", len(runPolys),
		"weighted", runWeighted,
	)

	polys := make([][]float64, 0, len(runPolys))
	for i, spec := range runPolys {
		poly, err := parseVector(spec)
		if err != nil {
			return fmt.Errorf("invalid --poly %d: %w", i, err)
		}
		if err := prob.Register(poly); err != nil {
			return fmt.Errorf("registering polynomial %d: %w", i, err)
		}
		polys = append(polys, poly)
	}

	start := time.Now()
	inst, err := prob.BuildInstance()
	if err != nil {
		return err
	}
	rows, cols := inst.Constraints.Dims()

	slog.Info("Instance built",
		"elapsed", time.Since(start),
		"constraint_rows", rows,
		"constraint_cols", cols,
	)

	runStore, err := store.NewFSStore(runDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	run := &store.Run{
		RunID:          uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Config:         cfg,
		Polynomials:    polys,
		ConstraintRows: rows,
		ConstraintCols: cols,
	}
	if res := prob.InversionResidual(); !math.IsNaN(res) {
		run.InversionResidual = res
	}
	if err := runStore.SaveRun(run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Printf("Run %s: %d polynomials, constraints %dx%d\n", run.RunID, len(polys), rows, cols)
	fmt.Printf("Hand %s to a solver, then import its solution with 'polyenv plot'.\n", runStore.RunPath(run.RunID))

	return nil
}

// parseInterval parses "min,max" into a domain interval.
func parseInterval(s string) (envelope.Interval, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return envelope.Interval{}, fmt.Errorf("want \"min,max\", got %q", s)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return envelope.Interval{}, fmt.Errorf("bad min %q: %w", parts[0], err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return envelope.Interval{}, fmt.Errorf("bad max %q: %w", parts[1], err)
	}
	return envelope.Interval{Min: min, Max: max}, nil
}

// parseVector parses a comma-separated float vector.
func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vec := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad entry %q: %w", part, err)
		}
		vec = append(vec, v)
	}
	return vec, nil
}
