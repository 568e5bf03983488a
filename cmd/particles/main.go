package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/export"
	"github.com/san-kum/particles/internal/gui"
	"github.com/san-kum/particles/internal/record"
	"github.com/san-kum/particles/internal/storage"
	"github.com/san-kum/particles/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	dataDir    string
	configFile string
	preset     string
	outFile    string
	frameNum   int
	trails     bool
	runs       int
	workers    int
	theme      string
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func main() {
	rootCmd := &cobra.Command{
		Use:   "particles",
		Short: "particles drifting out of a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			return openWindow(cfg, cfg.Seed())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".particles", "data directory")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the particle window",
		RunE:  runWindow,
	}
	addSceneFlags(windowCmd)
	windowCmd.Flags().Bool(config.FlagVSync, true, "synchronise presents with the display")
	windowCmd.Flags().Bool(config.FlagFPSOverlay, false, "draw the frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "watch the particles in the terminal",
		RunE:  runTUI,
	}
	addSceneFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", viz.ThemeMono.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run headless at a fixed timestep and store the result",
		RunE:  runRecord,
	}
	addSceneFlags(recordCmd)
	addRecordFlags(recordCmd)
	recordCmd.Flags().IntVar(&runs, "runs", 1, "record this many consecutive seeds")
	recordCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "recordings to run at once")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metrics of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render a frame as SVG, from a stored run or a fresh recording",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	addSceneFlags(snapshotCmd)
	addRecordFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().IntVar(&frameNum, "frame", 0, "n-th recorded sample to render (0 = last)")
	snapshotCmd.Flags().BoolVar(&trails, "trails", false, "draw each particle's path instead of one frame")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(headingStyle.Render("presets:"))
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %6d particles, speed %g-%g\n",
					name, p.Particles.Count, p.Particles.SpeedMin, p.Particles.SpeedMax)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "particles.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := config.Resolve(preset, "", nil)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(windowCmd, tuiCmd, recordCmd, listCmd, plotCmd, snapshotCmd, exportJSONCmd, presetsCmd, initConfigCmd)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int(config.FlagCount, config.DefaultCount, "number of particles")
	cmd.Flags().Uint64(config.FlagSeed, 0, "random seed (0 = random)")
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().Int(config.FlagFrames, config.DefaultFrames, "frames to simulate")
	cmd.Flags().Float64(config.FlagDt, config.DefaultDt, "fixed timestep in seconds")
	cmd.Flags().Int(config.FlagStride, config.DefaultStride, "keep every n-th frame")
}

func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Resolve(preset, configFile, cmd.Flags())
}

func openWindow(cfg *config.Config, s uint64) error {
	n, err := gui.Run(cfg, s)
	if err != nil {
		return err
	}
	fmt.Printf("closed after %d frames (seed %d)\n", n, s)
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return openWindow(cfg, cfg.Seed())
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg, cfg.Seed(), theme)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s := cfg.Seed()

	fmt.Printf("recording %d particles for %d frames at dt=%.4fs (seed %d)\n",
		cfg.Particles.Count, cfg.Record.Frames, cfg.Record.Dt, s)

	var results []*record.Result
	if runs > 1 {
		fmt.Printf("ensemble of %d runs, seeds %d-%d\n", runs, s, s+uint64(runs)-1)
		results, err = record.NewEnsemble(cfg, runs, s, workers).Run(cmd.Context())
	} else {
		var res *record.Result
		res, err = record.Run(cfg, s)
		results = []*record.Result{res}
	}
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	for _, res := range results {
		if err := saveRun(st, cfg, res); err != nil {
			return err
		}
	}
	return nil
}

func saveRun(st *storage.Store, cfg *config.Config, res *record.Result) error {
	runID, err := st.Save(storage.NewRunMetadata(cfg, res.Seed), res)
	if err != nil {
		return err
	}

	fmt.Printf("run saved: %s (%d frames, %.2fs simulated in %v)\n", runID, res.Frames, res.Elapsed, res.Wall)
	names := make([]string, 0, len(res.Final))
	for name := range res.Final {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, res.Final[name])
	}
	return nil
}

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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tCOUNT\tSEED\tFRAMES\tDT")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.4fs\n",
			run.ID,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Seed,
			run.Frames,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, times, err := st.LoadMetrics(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(headingStyle.Render("run: " + meta.ID))
	fmt.Printf("particles: %d  seed: %d\n", meta.Count, meta.Seed)
	fmt.Printf("samples: %d (%.2fs)\n\n", len(times), times[len(times)-1])

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// snapshot renders from a stored run when a run id is given, otherwise it
// records the configured scene in memory first.
func snapshot(cmd *cobra.Command, args []string) error {
	var (
		recorded [][]r2.Vec
		cfg      *config.Config
		err      error
	)

	if len(args) == 1 {
		cfg, recorded, err = loadRecorded(args[0])
	} else {
		cfg, recorded, err = recordScene(cmd)
	}
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		return fmt.Errorf("no recorded frames")
	}

	w, h, bg := cfg.Window.Width, cfg.Window.Height, cfg.BackgroundColor()
	var svg string
	if trails {
		svg = export.TrailsToSVG(recorded, cfg.ParticleShape().Color, w, h, bg)
	} else {
		idx := len(recorded) - 1
		if frameNum > 0 {
			if frameNum > len(recorded) {
				return fmt.Errorf("frame %d out of range (1-%d)", frameNum, len(recorded))
			}
			idx = frameNum - 1
		}
		svg = export.FrameToSVG(recorded[idx], cfg.ParticleShape(), w, h, bg)
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func loadRecorded(runID string) (*config.Config, [][]r2.Vec, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	byFrame, order, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}

	cfg := meta.Config()
	recorded := make([][]r2.Vec, 0, len(order))
	for _, n := range order {
		recorded = append(recorded, byFrame[n])
	}
	return cfg, recorded, nil
}

func recordScene(cmd *cobra.Command) (*config.Config, [][]r2.Vec, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	res, err := record.Run(cfg, cfg.Seed())
	if err != nil {
		return nil, nil, err
	}
	recorded := make([][]r2.Vec, len(res.Samples))
	for i, s := range res.Samples {
		recorded[i] = s.Positions
	}
	return cfg, recorded, nil
}
