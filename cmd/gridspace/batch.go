package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/san-kum/gridspace/internal/automation"
	"github.com/san-kum/gridspace/internal/storage"
	"github.com/spf13/cobra"
)

var (
	outDir     string
	sweepFrom  float64
	sweepTo    float64
	sweepMin   int
	sweepMax   int
	sweepSteps int
	trials     int
	maxPix     int
	maxSpan    float64
	maxOffset  float64
	seed       int64
)

func newBatchCmds() []*cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario of grid jobs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for scenario outputs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "spacing drift and float32 error across resolutions",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "lower edge")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "upper edge")
	sweepCmd.Flags().IntVar(&sweepMin, "min", 10, "smallest cell count")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 100000, "largest cell count")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of resolutions")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "check grid invariants on random linear spaces",
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&trials, "trials", 1000, "number of trials")
	mcCmd.Flags().IntVar(&maxPix, "max-n", 10000, "largest cell count")
	mcCmd.Flags().Float64Var(&maxSpan, "span", 100, "largest interval size")
	mcCmd.Flags().Float64Var(&maxOffset, "offset", 1e6, "largest interval offset from zero")
	mcCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")

	return []*cobra.Command{runCmd, sweepCmd, mcCmd}
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	debugf("scenario %q: %d steps", scenario.Name, len(scenario.Steps))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	r := &automation.Runner{OutDir: outDir, Store: st, Progress: cmd.ErrOrStderr()}

	results, err := r.RunScenario(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tKIND\tCELLS\tFILES\tSAVED")
	for i, res := range results {
		saved := res.SavedID
		if saved == "" {
			saved = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", i+1, res.Name, res.Kind, res.Total, len(res.Files), saved)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		for _, rep := range res.Reports {
			if !rep.Consistent {
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d axis(es) outside tolerance", failed)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	results, err := automation.RunSweep(cmd.Context(), &automation.ResolutionSweep{
		From:     sweepFrom,
		To:       sweepTo,
		MinPix:   sweepMin,
		MaxPix:   sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tPIXEL_SIZE\tMAX_DRIFT\tMAX_GAP\tF32_ERROR\tOK")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%g\t%.3g\t%.3g\t%.3g\t%v\n",
			r.NumPix, r.PixelSize, r.MaxDrift, r.MaxGap, r.Float32Error, r.Consistent)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		NumTrials: trials,
		MaxPix:    maxPix,
		MaxSpan:   maxSpan,
		MaxOffset: maxOffset,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	passed, failed := automation.MonteCarloStats(results)
	for _, r := range results {
		if !r.Equivalent || !r.Consistent {
			debugf("trial %d failed: [%g, %g] n=%d equivalent=%v consistent=%v",
				r.TrialID, r.From, r.To, r.NumPix, r.Equivalent, r.Consistent)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d trials: %d passed, %d failed\n", len(results), passed, failed)
	if failed > 0 {
		return fmt.Errorf("%d trial(s) failed", failed)
	}
	return nil
}
