package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/config"
	"github.com/san-kum/apogee/internal/export"
	"github.com/san-kum/apogee/internal/flight"
	"github.com/san-kum/apogee/internal/fuel"
	"github.com/san-kum/apogee/internal/mission"
	"github.com/san-kum/apogee/internal/parts"
	"github.com/san-kum/apogee/internal/storage"
	"github.com/san-kum/apogee/internal/telemetry"
	"github.com/san-kum/apogee/internal/tui"
	"github.com/san-kum/apogee/internal/vessel"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	configFile   string
	partsOverlay string
	launchAngle  float64
	stride       int
	sweepFrom    float64
	sweepTo      float64
	sweepStep    float64
	svgOut       string
	svgWidth     int
	svgHeight    int
	svgColor     string
)

// main registers the apogee commands and runs the root command. With no
// subcommand it opens the interactive cockpit with the default craft. It
// exits with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "apogee",
		Short: "two dimensional rocket flight simulator",
		RunE:  flyCraft,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".apogee", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&partsOverlay, "parts", "", "extra part catalog (yaml)")

	flyCmd := &cobra.Command{
		Use:   "fly [craft]",
		Short: "fly a craft from the keyboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  flyCraft,
	}
	flyCmd.Flags().Float64Var(&launchAngle, "angle", 90.0, "launch pad angle in degrees")

	runCmd := &cobra.Command{
		Use:   "run [mission.yaml]",
		Short: "fly a scripted mission without a display",
		Args:  cobra.ExactArgs(1),
		RunE:  runMission,
	}
	runCmd.Flags().IntVar(&stride, "stride", 5, "record every nth tick")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded flights",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded flight",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export flight data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export flight data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a flight's ground track to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVGRun,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	exportSVGCmd.Flags().StringVar(&svgColor, "color", "#4fc3f7", "trajectory stroke color")

	partsCmd := &cobra.Command{
		Use:   "parts",
		Short: "list the part catalog",
		RunE:  listParts,
	}

	craftCmd := &cobra.Command{
		Use:   "craft [name]",
		Short: "list stock craft, or show one craft's stack",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showCraft,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [craft]",
		Short: "stage by stage mass, thrust and delta-v",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeCraft,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [mission.yaml]",
		Short: "fly a mission across a range of launch angles",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepMission,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 60, "first launch angle in degrees")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 90, "last launch angle in degrees")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 5, "angle step in degrees")

	rootCmd.AddCommand(flyCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, partsCmd, craftCmd, analyzeCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadWorld builds the run configuration from defaults, an optional
// config file and an optional part catalog overlay.
func loadWorld() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if partsOverlay != "" {
		if _, err := parts.LoadOverlay(partsOverlay); err != nil {
			return nil, fmt.Errorf("failed to load parts: %w", err)
		}
	}
	return cfg, nil
}

// resolveCraft turns a craft argument into a display name and a builder.
// Stock names resolve from the preset table; a path ending in .yaml or
// .yml loads as a craft file. Call after loadWorld so overlay parts are
// registered.
func resolveCraft(arg string) (string, func() []*vessel.Part, error) {
	if build, ok := parts.Craft[arg]; ok {
		return arg, build, nil
	}
	if strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml") {
		name, list, err := parts.LoadCraft(arg)
		if err != nil {
			return "", nil, err
		}
		build := func() []*vessel.Part {
			fresh := make([]*vessel.Part, len(list))
			for i, p := range list {
				fresh[i] = p.Clone()
			}
			return fresh
		}
		return name, build, nil
	}
	return "", nil, fmt.Errorf("unknown craft: %s (available: %v)", arg, parts.CraftNames())
}

func flyCraft(cmd *cobra.Command, args []string) error {
	arg := "orbiter"
	if len(args) > 0 {
		arg = args[0]
	}

	cfg, err := loadWorld()
	if err != nil {
		return err
	}
	name, build, err := resolveCraft(arg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("angle") {
		cfg.Flight.LaunchAngleDeg = launchAngle
	}

	return tui.Run(cfg, name, build)
}

// eventLogger streams flight events to the log as the sim raises them.
type eventLogger struct {
	log  zerolog.Logger
	seen int
}

func (l *eventLogger) OnStep(s *flight.State) {
	for ; l.seen < len(s.Events); l.seen++ {
		l.log.Info().
			Float64("alt", s.Altitude).
			Float64("speed", s.Speed).
			Msg(s.Events[l.seen])
	}
}

func runMission(cmd *cobra.Command, args []string) error {
	plan, err := mission.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadWorld()
	if err != nil {
		return err
	}
	name, build, err := resolveCraft(plan.Craft)
	if err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("mission", plan.Name).Logger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := flight.New(cfg, build())
	if err != nil {
		return err
	}

	s.AddMetric(telemetry.NewMaxAltitude())
	s.AddMetric(telemetry.NewMaxSpeed())
	s.AddMetric(telemetry.NewMaxQ(s.Env()))
	s.AddMetric(telemetry.NewFuelBurned())
	s.AddMetric(telemetry.NewBurnTime())
	s.AddMetric(telemetry.NewDownrange(cfg.Physics.PlanetRadius))

	rec := storage.NewRecorder(stride)
	s.AddObserver(rec)
	s.AddObserver(&eventLogger{log: log})

	log.Info().Str("craft", name).Float64("duration", plan.Duration).Msg("launch")
	start := time.Now()

	final, err := mission.Fly(context.Background(), s, plan)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Craft:      name,
		Timestamp:  time.Now(),
		Dt:         cfg.Flight.Dt,
		FlightTime: final.Time,
		Status:     final.Status.String(),
		Body:       final.Body,
		Events:     final.Events,
		Metrics:    s.MetricValues(),
	}, rec.Samples())
	if err != nil {
		return err
	}

	log.Info().
		Str("status", final.Status.String()).
		Float64("flight_time", final.Time).
		Dur("wall", elapsed).
		Msg("mission complete")

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("status: %s after %.1fs near %s\n", final.Status, final.Time, final.Body)
	fmt.Println("\nmetrics:")
	for name, val := range s.MetricValues() {
		fmt.Printf("  %s: %.2f\n", name, val)
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
	fmt.Fprintln(w, "ID\tCRAFT\tTIME\tFLIGHT\tSTATUS\tBODY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%s\t%s\n",
			run.ID,
			run.Craft,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FlightTime,
			run.Status,
			run.Body,
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("craft: %s\n", meta.Craft)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		pick    func(storage.Sample) float64
	}{
		{"altitude (m)", func(s storage.Sample) float64 { return s.Altitude }},
		{"speed (m/s)", func(s storage.Sample) float64 { return s.Speed }},
		{"vertical speed (m/s)", func(s storage.Sample) float64 { return s.Vertical }},
		{"mass (kg)", func(s storage.Sample) float64 { return s.Mass }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.pick(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.ExportCSV(os.Stdout, samples)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func exportSVGRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadWorld()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	svg := export.TrajectorySVG(samples, cfg.Physics.PlanetRadius, svgWidth, svgHeight, svgColor)
	if svg == "" {
		return fmt.Errorf("need at least two samples to draw")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func listParts(cmd *cobra.Command, args []string) error {
	if _, err := loadWorld(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tCLASS\tMASS(kg)\tFUEL(kg)\tTHRUST(kN)\tBURN(kg/s)")

	for _, name := range parts.Names() {
		sp := parts.Get(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.0f\t%.0f\t%.1f\n",
			sp.Name, sp.Title, sp.Class, sp.Mass, sp.FuelCapacity, sp.MaxThrust/1000, sp.BurnRate)
	}

	return w.Flush()
}

func showCraft(cmd *cobra.Command, args []string) error {
	if _, err := loadWorld(); err != nil {
		return err
	}

	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPARTS\tMASS(kg)\tFUEL(kg)\tNOTES")
		for _, name := range parts.CraftNames() {
			v, err := vessel.Build(parts.GetCraft(name))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%s\n",
				name, v.Count(), v.Mass(), v.FuelRemaining(), parts.Blurb[name])
		}
		return w.Flush()
	}

	name, build, err := resolveCraft(args[0])
	if err != nil {
		return err
	}
	v, err := vessel.Build(build())
	if err != nil {
		return err
	}

	if b := parts.Blurb[name]; b != "" {
		fmt.Printf("%s: %s\n\n", name, b)
	} else {
		fmt.Printf("%s\n\n", name)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPART\tCLASS\tMASS(kg)\tFUEL(kg)")
	for _, p := range v.Parts() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%.0f\n",
			p.ID, p.Spec.Title, p.Spec.Class, p.TotalMass(), p.Fuel)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal: %.0f kg wet, %.0f kg propellant\n", v.Mass(), v.FuelRemaining())
	return nil
}

// analyzeCraft walks the staging sequence the way a flight would: report
// the current stack, fire the next decoupler, repeat. Engines sitting on
// an unfired stack decoupler do not count until it goes.
func analyzeCraft(cmd *cobra.Command, args []string) error {
	cfg, err := loadWorld()
	if err != nil {
		return err
	}

	name, build, err := resolveCraft(args[0])
	if err != nil {
		return err
	}
	v, err := vessel.Build(build())
	if err != nil {
		return err
	}

	g0 := astro.NewEnvironment(cfg.Physics).Planet.SurfaceGravity()
	fmt.Printf("%s staging analysis (surface gravity %.2f m/s^2, full tanks)\n\n", name, g0)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tPARTS\tWET(kg)\tFUEL(kg)\tTHRUST(kN)\tTWR\tDV(m/s)")

	for stage := 1; ; stage++ {
		wet := v.Mass()

		var thrust, rate, avail float64
		seen := make(map[int]bool)
		for _, eng := range v.Engines() {
			if fuel.StageBlocked(v, eng) {
				continue
			}
			var engAvail float64
			for _, src := range fuel.FindSources(v, eng) {
				engAvail += src.Part.Fuel
				if !seen[src.Part.ID] {
					seen[src.Part.ID] = true
					avail += src.Part.Fuel
				}
			}
			if engAvail <= 0 {
				continue
			}
			thrust += eng.Spec.MaxThrust
			rate += eng.Spec.BurnRate
		}

		if thrust > 0 {
			ve := thrust / rate
			dv := ve * math.Log(wet/(wet-avail))
			twr := thrust / (wet * g0)
			fmt.Fprintf(w, "%d\t%d\t%.0f\t%.0f\t%.0f\t%.2f\t%.0f\n",
				stage, v.Count(), wet, avail, thrust/1000, twr, dv)
		} else {
			fmt.Fprintf(w, "%d\t%d\t%.0f\t%.0f\t-\t-\t-\n",
				stage, v.Count(), wet, avail)
		}

		dec := v.NextDecoupler()
		if dec == nil {
			break
		}
		drop := make(map[int]bool)
		for _, p := range v.Subtree(dec.ID) {
			drop[p.ID] = true
		}
		v.Remove(drop)
	}

	return w.Flush()
}

func sweepMission(cmd *cobra.Command, args []string) error {
	plan, err := mission.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadWorld()
	if err != nil {
		return err
	}
	_, build, err := resolveCraft(plan.Craft)
	if err != nil {
		return err
	}

	if sweepStep <= 0 {
		return fmt.Errorf("step must be positive")
	}
	var angles []float64
	for a := sweepFrom; a <= sweepTo+1e-9; a += sweepStep {
		angles = append(angles, a)
	}
	if len(angles) == 0 {
		return fmt.Errorf("no angles between %.1f and %.1f", sweepFrom, sweepTo)
	}

	fmt.Printf("sweeping %s over %d launch angles...\n\n", plan.Name, len(angles))
	start := time.Now()

	results, err := mission.RunSweep(context.Background(), cfg, build, plan, angles)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tSTATUS\tTIME\tAPEX(km)\tRANGE(km)\tFUEL(kg)")
	for _, r := range results {
		fmt.Fprintf(w, "%.1f\t%s\t%.1fs\t%.1f\t%.1f\t%.0f\n",
			r.AngleDeg, r.Status, r.Time, r.MaxAltitude/1000, r.Downrange/1000, r.FuelBurned)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}
