package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/synclattice/internal/config"
	"github.com/san-kum/synclattice/internal/viz"
)

var (
	dataDir  string
	logLevel string

	// Lattice parameters
	gridSize    int
	coupling    float64
	noise       float64
	dt          float64
	seed        int64
	steps       int
	workers     int
	sampleEvery int
	frameRate   int

	// Config file
	configFile string
	// Preset name
	preset string

	scenarioFile string
	label        string
	theme        string

	// Injection target
	targetX, targetY int
	radius           float64
	intensity        float64
	warmup           int
	svgOut           string

	sweepMin, sweepMax float64
	sweepPoints        int
	sweepTail          int
	ensembleRuns       int

	withGrid   bool
	svgScale   float64
	seriesOnly bool
)

// main registers the synclattice commands and executes the root command.
// Without a subcommand it opens the interactive preset picker.
func main() {
	rootCmd := &cobra.Command{
		Use:           "synclattice",
		Short:         "coupled oscillator lattice lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(time.Now().UnixNano())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".synclattice", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a lattice and store the results",
		RunE:  runSimulation,
	}
	addLatticeFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every nth sample")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "injection scenario (yaml)")
	runCmd.Flags().StringVar(&label, "label", "", "run label (defaults to preset or scenario name)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a lattice with live terminal visualization",
		RunE:  runLive,
	}
	addLatticeFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "spectrum", fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	injectCmd := &cobra.Command{
		Use:   "inject [pattern]",
		Short: "apply one injection and report its effect",
		Args:  cobra.ExactArgs(1),
		RunE:  runInject,
	}
	addLatticeFlags(injectCmd)
	injectCmd.Flags().IntVar(&targetX, "x", -1, "target column (default center)")
	injectCmd.Flags().IntVar(&targetY, "y", -1, "target row (default center)")
	injectCmd.Flags().Float64Var(&radius, "radius", 5, "influence radius")
	injectCmd.Flags().Float64Var(&intensity, "intensity", 1, "injection strength")
	injectCmd.Flags().IntVar(&warmup, "warmup", 100, "ticks before the injection")
	injectCmd.Flags().IntVar(&steps, "steps", 200, "ticks after the injection")
	injectCmd.Flags().StringVar(&svgOut, "svg", "", "write the final grid as svg")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep coupling strength and report final coherence",
		RunE:  runSweep,
	}
	addLatticeFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "ticks per run")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lowest coupling")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "highest coupling")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "number of coupling values")
	sweepCmd.Flags().IntVar(&sweepTail, "tail", 50, "trailing samples averaged per run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same configuration from consecutive seeds",
		RunE:  runEnsemble,
	}
	addLatticeFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "ticks per run")
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 8, "number of runs")
	ensembleCmd.Flags().StringVar(&scenarioFile, "scenario", "", "injections applied to every run (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot coherence and entropy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectral and spatial analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&withGrid, "grid", false, "include the final grid")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final grid or the coherence trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 8, "pixels per node")
	exportSVGCmd.Flags().BoolVar(&seriesOnly, "series", false, "render the coherence trace instead of the grid")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		RunE:  benchTick,
	}

	rootCmd.AddCommand(runCmd, liveCmd, injectCmd, sweepCmd, ensembleCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addLatticeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridSize, "grid", config.DefaultGridSize, "lattice side length")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling strength K")
	cmd.Flags().Float64Var(&noise, "noise", config.DefaultNoise, "noise amplitude")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines per tick (0 = all cores)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05",
		}),
	))
	return nil
}

// resolveConfig layers preset, config file and explicitly set flags over
// the defaults, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		cfg.GridSize = gridSize
	}
	if flags.Changed("coupling") {
		cfg.Coupling = coupling
	}
	if flags.Changed("noise") {
		cfg.Noise = noise
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
