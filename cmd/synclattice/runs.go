package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/synclattice/internal/analysis"
	"github.com/san-kum/synclattice/internal/config"
	"github.com/san-kum/synclattice/internal/export"
	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tK\tNOISE\tDT\tSTEPS\tANCHORS\tMEAN R")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\t%.3f\t%d\t%d\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridSize,
			run.Coupling,
			run.Noise,
			run.Dt,
			run.Steps,
			run.Anchors,
			run.Metrics["mean_coherence"],
		)
	}

	return w.Flush()
}

func loadSeries(runID string) (*storage.RunMetadata, []lattice.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadMetrics(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("no data")
	}
	return meta, samples, nil
}

func splitSeries(samples []lattice.Sample) (coherence, entropy []float64) {
	coherence = make([]float64, len(samples))
	entropy = make([]float64, len(samples))
	for i, s := range samples {
		coherence[i] = s.Coherence
		entropy[i] = s.Entropy
	}
	return coherence, entropy
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d  K=%.3f  noise=%.3f  dt=%.3f\n", meta.GridSize, meta.GridSize, meta.Coupling, meta.Noise, meta.Dt)
	fmt.Printf("samples: %d\n\n", len(samples))

	coherence, entropy := splitSeries(samples)
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{coherence, "coherence (order parameter)"},
		{entropy, "phase entropy (normalized)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, samples, err := loadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)

	coherence, _ := splitSeries(samples)
	spacing := 1
	if len(samples) > 1 {
		spacing = int(samples[1].Step - samples[0].Step)
	}

	ps := analysis.PowerSpectrum(coherence)
	if len(ps) > 4 {
		plotData := ps[1 : len(ps)/4+1]
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (coherence)"),
		))
		fmt.Println()
	}

	if period := analysis.DominantPeriod(coherence, spacing); period > 0 {
		fmt.Printf("dominant period: %.1f ticks (%.3f time units)\n", period, period*meta.Dt)
	} else {
		fmt.Println("dominant period: none")
	}
	if v, ok := meta.Metrics["sync_time"]; ok {
		if v < 0 {
			fmt.Println("sync step: never")
		} else {
			fmt.Printf("sync step: %.0f\n", v)
		}
	}

	fmt.Println("\ncoherence / entropy portrait:")
	fmt.Print(analysis.PortraitToASCII(analysis.GeneratePortrait(samples), 60, 16))

	st := storage.New(dataDir)
	g, err := st.LoadGrid(runID)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	local := analysis.LocalOrder(g)
	mean := 0.0
	for _, v := range local {
		mean += v
	}
	mean /= float64(len(local))
	defects := analysis.FindDefects(g)
	positive := 0
	for _, d := range defects {
		if d.Charge > 0 {
			positive++
		}
	}

	fmt.Println("\nfinal grid:")
	fmt.Printf("  global coherence: %.4f\n", lattice.PhaseCoherence(g.Nodes))
	fmt.Printf("  mean local order: %.4f\n", mean)
	fmt.Printf("  phase defects:    %d (+%d / -%d)\n", len(defects), positive, len(defects)-positive)
	fmt.Printf("  titans:           %d\n", g.Titans())
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0], withGrid)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	var svg string
	if seriesOnly {
		_, samples, err := loadSeries(runID)
		if err != nil {
			return err
		}
		coherence, _ := splitSeries(samples)
		svg = export.SeriesToSVG(coherence, 800, 300, "#00ffff")
	} else {
		g, err := st.LoadGrid(runID)
		if err != nil {
			return err
		}
		anchors, err := st.LoadAnchors(runID)
		if err != nil {
			return err
		}
		svg = export.GridToSVG(g, svgScale, anchors)
	}

	var out io.Writer = os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err := io.WriteString(out, svg)
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tK\tNOISE\tDT\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.3f\t%d\n", name, p.GridSize, p.Coupling, p.Noise, p.Dt, p.Steps)
	}
	return w.Flush()
}
