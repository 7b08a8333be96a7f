package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/polyenv/polyenv/internal/store"
)

var (
	runsDataDir   string
	olderThanDays int
	forceClean    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage stored envelope runs",
	Long: `Manage stored runs including listing, inspecting, and cleaning old
runs. A run holds the problem configuration, the registered polynomials,
and any imported solver solution.`,
}

var listRunsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored runs",
	RunE:  runListRuns,
}

var showRunCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowRun,
}

var cleanRunsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old runs",
	RunE:  runCleanRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(listRunsCmd)
	runsCmd.AddCommand(showRunCmd)
	runsCmd.AddCommand(cleanRunsCmd)

	runsCmd.PersistentFlags().StringVar(&runsDataDir, "data-dir", "./data", "Base directory for run storage")

	cleanRunsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete runs older than N days (required)")
	cleanRunsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListRuns(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tDEGREE\tPOLYS\tWEIGHTED\tSOLUTION\tSIZE")
	fmt.Fprintln(w, "------\t-------\t------\t-----\t--------\t--------\t----")

	for _, info := range infos {
		runDir := filepath.Join(runsDataDir, "runs", info.RunID)
		size, err := getDirSize(runDir)
		sizeStr := "unknown"
		if err == nil {
			sizeStr = formatBytes(size)
		}

		solution := "-"
		if info.HasSolution {
			solution = "yes"
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\t%s\n",
			shortID(info.RunID),
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			info.MaxDegree,
			info.Polynomials,
			info.Weighted,
			solution,
			sizeStr,
		)
	}

	w.Flush()

	fmt.Printf("\nTotal runs: %d\n", len(infos))
	return nil
}

func runShowRun(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	run, err := runStore.LoadRun(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	dom := run.Config.Domain[0]
	fmt.Printf("Run: %s\n", run.RunID)
	fmt.Printf("Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("  Degree: %d (dimension %d)\n", run.Config.MaxDegree, 2*run.Config.MaxDegree+1)
	fmt.Printf("  Domain: [%g, %g]\n", dom.Min, dom.Max)
	fmt.Printf("  Input: %s\n", inputMode(run.Config.InterpolantInput))
	fmt.Printf("  Weighted: %t\n", run.Config.Weighted)
	fmt.Println()
	fmt.Printf("Polynomials: %d\n", len(run.Polynomials))
	fmt.Printf("Constraints: %dx%d\n", run.ConstraintRows, run.ConstraintCols)
	if run.InversionResidual != 0 {
		fmt.Printf("Inversion residual: %.3e\n", run.InversionResidual)
	}

	if _, err := runStore.LoadSolution(run.RunID); err == nil {
		fmt.Println("Solution: imported")
	} else {
		fmt.Println("Solution: none")
	}
	return nil
}

func runCleanRuns(cmd *cobra.Command, args []string) error {
	if olderThanDays <= 0 {
		return fmt.Errorf("must specify --older-than")
	}

	runStore, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	var toDelete []store.RunInfo
	for _, info := range infos {
		if info.CreatedAt.Before(cutoff) {
			toDelete = append(toDelete, info)
		}
	}

	if len(toDelete) == 0 {
		fmt.Println("No runs match deletion criteria.")
		return nil
	}

	fmt.Printf("Found %d run(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		fmt.Printf("  - %s (%s)\n", shortID(info.RunID), info.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if !forceClean {
		fmt.Print("\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted := 0
	failed := 0
	for _, info := range toDelete {
		if err := runStore.DeleteRun(info.RunID); err != nil {
			slog.Error("Failed to delete run", "run_id", info.RunID, "error", err)
			failed++
		} else {
			slog.Info("Deleted run", "run_id", info.RunID)
			deleted++
		}
	}

	fmt.Printf("\nDeleted %d run(s), %d failed.\n", deleted, failed)
	return nil
}

func inputMode(interpolant bool) string {
	if interpolant {
		return "interpolant"
	}
	return "coefficient"
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12] + "..."
	}
	return id
}

// getDirSize calculates the total size of a directory
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
