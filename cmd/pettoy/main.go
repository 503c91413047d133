package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pettoy/internal/automation"
	"github.com/san-kum/pettoy/internal/config"
	"github.com/san-kum/pettoy/internal/export"
	"github.com/san-kum/pettoy/internal/gui"
	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/metrics"
	"github.com/san-kum/pettoy/internal/storage"
	"github.com/san-kum/pettoy/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	windowed   bool
	fps        int
	logFile    string
	// simulate
	duration     float64
	dt           float64
	rate         float64
	width        float64
	height       float64
	scenarioFile string
	runs         int
	save         bool
	svgPath      string
)

func main() {
	log.SetPrefix("pettoy: ")
	log.SetFlags(log.Ltime)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running without a subcommand opens
// the full-screen window.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pettoy",
		Short:        "full-screen animation toy for cats",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().BoolVar(&windowed, "windowed", false, "open a window instead of going full screen")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pettoy", "session archive directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the full-screen window (default)",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "play in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the terminal is in use")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run a headless session and report energy and activity",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Float64Var(&duration, "duration", 60, "session length in seconds")
	simulateCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "frame time in seconds")
	simulateCmd.Flags().Float64Var(&rate, "rate", 2, "random key presses per second")
	simulateCmd.Flags().Float64Var(&width, "width", 1920, "surface width")
	simulateCmd.Flags().Float64Var(&height, "height", 1080, "surface height")
	simulateCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scripted key events (yaml) instead of a random keyboard")
	simulateCmd.Flags().IntVar(&runs, "runs", 1, "number of independent sessions")
	simulateCmd.Flags().BoolVar(&save, "save", false, "archive the session under --data")
	simulateCmd.Flags().StringVar(&svgPath, "svg", "", "write the last drawn frame to this SVG file")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "list archived sessions",
		Args:  cobra.NoArgs,
		RunE:  listSessions,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot an archived session",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSession,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the energy curve to this SVG file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}

	rootCmd.AddCommand(runCmd, tuiCmd, simulateCmd, sessionsCmd, plotCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig resolves defaults, then a preset, then a config file, then
// explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if windowed {
		cfg.Display.Fullscreen = false
	}
	if cmd.Flags().Changed("fps") {
		cfg.Display.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Printf("starting %q with seed %d", cfg.Display.Title, cfg.Seed)
	app, err := gui.NewApp(cfg, rand.New(rand.NewSource(cfg.Seed)), metrics.Standard()...)
	if err != nil {
		return err
	}

	// Signals and window close requests do not end the session; only the
	// exit combo does.
	if err := app.Run(context.Background()); err != nil {
		return err
	}
	logSummary(app.Loop)
	return nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "pettoy:")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	log.Printf("starting terminal session with seed %d", cfg.Seed)
	l, err := viz.Run(cfg, rand.New(rand.NewSource(cfg.Seed)), metrics.Standard()...)
	if err != nil {
		return err
	}
	logSummary(l)
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rc := automation.RunConfig{
		Config:   cfg,
		Width:    width,
		Height:   height,
		Duration: duration,
		Dt:       dt,
		Rate:     rate,
	}
	source := "random"
	if scenarioFile != "" {
		sc, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		rc.Scenario = sc
		source = "scenario"
		if sc.Name != "" {
			source = sc.Name
		}
	}

	out := cmd.OutOrStdout()
	ctx := context.Background()

	if runs > 1 {
		start := time.Now()
		reports, err := automation.RunEnsemble(ctx, rc, runs)
		if err != nil {
			return err
		}
		log.Printf("%d sessions in %v", runs, time.Since(start))
		return printEnsemble(out, reports)
	}

	var frame *export.SVG
	if svgPath != "" {
		frame = export.NewSVG(width, height)
		rc.Canvas = frame
	}

	start := time.Now()
	report, err := automation.Run(ctx, rc)
	if err != nil {
		return err
	}
	log.Printf("simulated %.0fs in %v", report.Stats.Elapsed, time.Since(start))

	if err := printReport(out, report); err != nil {
		return err
	}

	if frame != nil {
		if err := frame.WriteFile(svgPath); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Fprintf(out, "frame written to %s\n", svgPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(source, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "session id: %s\n", id)
	}
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	sessions, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	return printSessions(cmd.OutOrStdout(), sessions)
}

func plotSession(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s (%s, seed %d)\n\n", meta.ID, meta.Source, meta.Seed)
	printSeries(out, series)

	if svgPath != "" {
		if err := export.WriteSeries(svgPath, series.Energy, 800, 300, "#ffd700"); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Fprintf(out, "energy curve written to %s\n", svgPath)
	}
	return nil
}

func logSummary(l *loop.Loop) {
	st := l.Stats()
	log.Printf("session over after %.1fs: %d frames, %d keys accepted, %d debounced, peak energy %.1f",
		st.Elapsed, st.Frames, st.Accepted, st.Debounced, st.PeakEnergy)
	for _, m := range l.Metrics() {
		log.Printf("  %s: %.3f", m.Name(), m.Value())
	}
}
