package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/synclattice/internal/automation"
	"github.com/san-kum/synclattice/internal/config"
	"github.com/san-kum/synclattice/internal/export"
	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/sim"
	"github.com/san-kum/synclattice/internal/storage"
	"github.com/san-kum/synclattice/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runLabel := label
	if runLabel == "" {
		runLabel = preset
	}

	var (
		result     *sim.Result
		injections int
	)
	start := time.Now()

	if scenarioFile != "" {
		scenario, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		if runLabel == "" {
			runLabel = scenario.Name
		}
		scenario.Config.Apply(cfg)
		injections = len(scenario.Injections)
		result, err = automation.RunScenario(ctx, scenario, cfg, slog.Default())
		if err != nil {
			return err
		}
	} else {
		eng, err := lattice.NewEngine(cfg.Lattice(), lattice.WithSeed(cfg.Seed), lattice.WithWorkers(cfg.Workers))
		if err != nil {
			return err
		}
		s := sim.New(eng, slog.Default())
		for _, m := range sim.DefaultMetrics() {
			s.AddMetric(m)
		}
		fmt.Printf("running %dx%d lattice for %d steps...\n", cfg.GridSize, cfg.GridSize, cfg.Steps)
		result, err = s.Run(ctx, sim.Config{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery, ValidateState: true})
		if err != nil {
			return err
		}
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Label:      runLabel,
		Seed:       cfg.Seed,
		GridSize:   cfg.GridSize,
		Coupling:   cfg.Coupling,
		Noise:      cfg.Noise,
		Dt:         cfg.Dt,
		Injections: injections,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printMetrics(result.Metrics)
	for _, m := range result.Manifests {
		fmt.Println()
		fmt.Print(m.String())
	}
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	viz.SetTheme(theme)

	eng, err := lattice.NewEngine(cfg.Lattice(), lattice.WithSeed(cfg.Seed), lattice.WithWorkers(cfg.Workers))
	if err != nil {
		return err
	}
	return viz.RunLive(eng, cfg.FrameRate)
}

func runInject(cmd *cobra.Command, args []string) error {
	pattern, err := lattice.ParsePattern(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := lattice.NewEngine(cfg.Lattice(), lattice.WithSeed(cfg.Seed), lattice.WithWorkers(cfg.Workers))
	if err != nil {
		return err
	}

	x, y := targetX, targetY
	if x < 0 {
		x = cfg.GridSize / 2
	}
	if y < 0 {
		y = cfg.GridSize / 2
	}

	for i := 0; i < warmup; i++ {
		eng.Tick()
	}
	before := eng.Tick()

	manifest := eng.Inject(lattice.Command{
		TargetX:   x,
		TargetY:   y,
		Radius:    radius,
		Intensity: intensity,
		Pattern:   pattern,
	})
	slog.Debug("injected", "pattern", pattern, "x", x, "y", y, "radius", radius, "intensity", intensity)

	coherence := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		coherence = append(coherence, eng.Tick().Coherence)
	}
	after := eng.Tick()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tSTEP\tCOHERENCE\tENTROPY")
	fmt.Fprintf(w, "before\t%d\t%.4f\t%.4f\n", before.Step, before.Coherence, before.Entropy)
	fmt.Fprintf(w, "after\t%d\t%.4f\t%.4f\n", after.Step, after.Coherence, after.Entropy)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(coherence) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(coherence,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("coherence after %s at (%d,%d)", pattern, x, y)),
		))
	}

	var anchors []lattice.Anchor
	if manifest != nil {
		fmt.Println()
		fmt.Print(manifest.String())
		anchors = manifest.Anchors
	}

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.GridToSVG(eng.Grid(), 8, anchors)), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.CouplingSweep{
		Base:     cfg.Lattice(),
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepPoints,
		Steps:    cfg.Steps,
		Seed:     cfg.Seed,
		Limit:    cfg.Workers,
		Tail:     sweepTail,
	}
	results, err := sweep.Run(ctx, slog.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUPLING\tFINAL R\tMEAN R\tFINAL H")
	final := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\n", r.Coupling, r.FinalCoherence, r.MeanCoherence, r.FinalEntropy)
		final[i] = r.MeanCoherence
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(final) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(final,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption(fmt.Sprintf("mean coherence vs coupling [%.2f, %.2f]", sweepMin, sweepMax)),
		))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(cfg.Lattice(), ensembleRuns, cfg.Seed)
	ens.SetLimit(cfg.Workers)
	if scenarioFile != "" {
		scenario, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		ens.Schedule(scenario.Injections...)
	}

	results, err := ens.Run(ctx, sim.Config{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery, ValidateState: true})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN R\tPEAK R\tSYNC STEP\tSTABILITY")
	var mean float64
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.0f\t%.3f\n",
			cfg.Seed+int64(i),
			r.Metrics["mean_coherence"],
			r.Metrics["peak_coherence"],
			r.Metrics["sync_time"],
			r.Metrics["stability"],
		)
		mean += r.Metrics["mean_coherence"]
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(results) > 0 {
		fmt.Printf("\nensemble mean coherence: %.4f over %d runs\n", mean/float64(len(results)), len(results))
	}
	return nil
}

func benchTick(cmd *cobra.Command, args []string) error {
	sizes := []int{16, 32, 64, 128}
	workerCounts := []int{1, 0}
	const ticks = 200

	fmt.Printf("benchmarking %d ticks per configuration\n\n", ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tNODES\tWORKERS\tTIME\tTICKS/SEC\tNODES/SEC")

	for _, n := range sizes {
		for _, wk := range workerCounts {
			lc := config.DefaultConfig().Lattice()
			lc.GridSize = n
			eng, err := lattice.NewEngine(lc, lattice.WithSeed(42), lattice.WithWorkers(wk))
			if err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < ticks; i++ {
				eng.Tick()
			}
			elapsed := time.Since(start)

			tps := float64(ticks) / elapsed.Seconds()
			workersLabel := fmt.Sprint(wk)
			if wk == 0 {
				workersLabel = "all"
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%v\t%.0f\t%.0f\n",
				n, n*n, workersLabel, elapsed.Round(time.Microsecond), tps, tps*float64(n*n))
		}
	}

	return w.Flush()
}
