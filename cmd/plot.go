package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyenv/polyenv/internal/conic"
	"github.com/polyenv/polyenv/internal/envelope"
	"github.com/polyenv/polyenv/internal/render"
	"github.com/polyenv/polyenv/internal/store"
)

var (
	plotDataDir  string
	plotRunID    string
	plotSolution string
	plotOut      string
	plotPoints   int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a run's polynomials and envelope to HTML",
	Long: `Loads a stored run, rebuilds its envelope problem, and renders the
polynomial family to a self-contained HTML chart. When a solver
solution is available (imported via --solution or previously stored),
the fitted lower envelope is drawn as well.`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVar(&plotDataDir, "data-dir", "./data", "Base directory for run storage")
	plotCmd.Flags().StringVar(&plotRunID, "run", "", "Run ID to plot (required)")
	plotCmd.Flags().StringVar(&plotSolution, "solution", "", "Solver solution JSON to import and attach to the run")
	plotCmd.Flags().StringVar(&plotOut, "out", "plot.html", "Output HTML path")
	plotCmd.Flags().IntVar(&plotPoints, "points", 1000, "Samples across the domain")

	plotCmd.MarkFlagRequired("run")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(plotDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	run, err := runStore.LoadRun(plotRunID)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	prob, err := envelope.New(run.Config, logger)
	if err != nil {
		return fmt.Errorf("failed to rebuild problem: %w", err)
	}
	for i, poly := range run.Polynomials {
		if err := prob.Register(poly); err != nil {
			return fmt.Errorf("re-registering polynomial %d: %w", i, err)
		}
	}

	sol, err := loadSolution(runStore, run.RunID)
	if err != nil {
		return err
	}
	if sol == nil {
		slog.Info("No solution available; plotting the family only", "run", run.RunID)
	} else {
		slog.Info("Plotting family and envelope", "run", run.RunID, "status", sol.Status.String())
	}

	f, err := os.Create(plotOut)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	if err := render.WriteChart(f, prob, sol, render.Options{Points: plotPoints}); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", plotOut)
	return nil
}

// loadSolution imports the --solution file when given (attaching it to
// the run), otherwise falls back to a previously stored solution.
func loadSolution(runStore *store.FSStore, runID string) (*conic.Solution, error) {
	if plotSolution != "" {
		data, err := os.ReadFile(plotSolution)
		if err != nil {
			return nil, fmt.Errorf("failed to read solution file: %w", err)
		}
		var sol conic.Solution
		if err := json.Unmarshal(data, &sol); err != nil {
			return nil, fmt.Errorf("failed to decode solution file: %w", err)
		}
		if err := runStore.SaveSolution(runID, &sol); err != nil {
			return nil, fmt.Errorf("failed to attach solution: %w", err)
		}
		return &sol, nil
	}

	sol, err := runStore.LoadSolution(runID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stored solution: %w", err)
	}
	return sol, nil
}
