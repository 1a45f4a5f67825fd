package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mvsim/internal/config"
	"github.com/san-kum/mvsim/internal/directory"
	"github.com/san-kum/mvsim/internal/dynamo"
	"github.com/san-kum/mvsim/internal/integrators"
	"github.com/san-kum/mvsim/internal/metrics"
	"github.com/san-kum/mvsim/internal/node"
	"github.com/san-kum/mvsim/internal/rigidbody"
	"github.com/san-kum/mvsim/internal/storage"
	"github.com/san-kum/mvsim/internal/vehicle"
	"github.com/san-kum/mvsim/internal/wire"
)

// stabilityBound is the per-state-component magnitude beyond which a
// run is counted as a stability violation (metrics.Stability); vehicle
// states are positions/velocities in SI units, so this comfortably
// bounds anything but a diverging run.
const stabilityBound = 1000.0

var (
	dataDir        string
	dt             float64
	duration       float64
	preset         string
	scenarioFile   string
	directoryAddr  string
	nodeName       string
	publishTopic   string
	seed           int64
	sweepRuns      int
	sweepJitter    float64
)

// main is the entry point for the mvsim CLI: it registers every
// subcommand and executes the root command, exiting with status 1 if
// command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mvsim",
		Short: "multi-vehicle 2D physics simulator and messaging fabric",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mvsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a vehicle scenario and store the result",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&scenarioFile, "config", "", "scenario config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "default", "vehicle preset, when --config is not given")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed, recorded with the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available vehicle presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	directoryCmd := &cobra.Command{
		Use:   "directory",
		Short: "run the directory server nodes register and discover each other through",
		RunE:  runDirectory,
	}
	directoryCmd.Flags().StringVar(&directoryAddr, "endpoint", fmt.Sprintf("tcp://0.0.0.0:%d", directory.MainRepPort), "bind endpoint")

	nodeCmd := &cobra.Command{
		Use:   "node",
		Short: "run a vehicle as a messaging-fabric node: publishes odometry, offers a reset service",
		RunE:  runNode,
	}
	nodeCmd.Flags().StringVar(&nodeName, "name", "car0", "node name")
	nodeCmd.Flags().StringVar(&directoryAddr, "directory", config.DefaultDirectoryEndpoint, "directory endpoint to connect to")
	nodeCmd.Flags().StringVar(&preset, "preset", "default", "vehicle preset")
	nodeCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	nodeCmd.Flags().StringVar(&publishTopic, "topic", "odom", "odometry topic name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's state trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's state trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and state trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the vehicle + chassis pipeline across step sizes",
		RunE:  benchVehicle,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a seeded ensemble of a vehicle and report aggregate metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&scenarioFile, "config", "", "scenario config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "default", "vehicle preset, when --config is not given")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	sweepCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "first seed in the ensemble")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeded runs in the ensemble")
	sweepCmd.Flags().Float64Var(&sweepJitter, "jitter", 0, "stddev of per-run initial-state noise, 0 for none")

	watchCmd := &cobra.Command{
		Use:   "watch [topic]",
		Short: "subscribe to a node's published topic and render it live in a terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&directoryAddr, "directory", config.DefaultDirectoryEndpoint, "directory endpoint to connect to")
	watchCmd.Flags().StringVar(&nodeName, "name", "watcher", "name this subscriber registers under")

	rootCmd.AddCommand(runCmd, presetsCmd, directoryCmd, nodeCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, benchCmd, sweepCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildScenario resolves --config/--preset into a config.Config the way
// the run and sweep commands both need it.
func buildScenario(cmd *cobra.Command) (*config.Config, error) {
	if scenarioFile != "" {
		return config.Load(scenarioFile)
	}
	cfg := config.DefaultConfig()
	cfg.Dt = dt
	cfg.Duration = duration
	cfg.Vehicles[0].Preset = preset
	return cfg, nil
}

// buildSimulator wires one vehicle.Config into a runnable dynamo.Simulator
// over a rigidbody.Chassis, the same {VehicleController, Chassis} pair
// every vehicle in a scenario is built from.
func buildSimulator(vcfg *vehicle.Config, dt float64) (*dynamo.Simulator, dynamo.State, error) {
	v, err := vcfg.BuildVehicle()
	if err != nil {
		return nil, nil, err
	}
	chassis := rigidbody.NewChassis(v)
	ctrl := rigidbody.NewVehicleController(v, dt)
	sim := dynamo.New(chassis, integrators.NewRK4(), ctrl)
	return sim, rigidbody.ZeroState(), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildScenario(cmd)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	for _, vs := range cfg.Vehicles {
		vcfg, err := vs.BuildVehicle()
		if err != nil {
			return fmt.Errorf("vehicle %s: %w", vs.Name, err)
		}

		sim, x0, err := buildSimulator(vcfg, cfg.Dt)
		if err != nil {
			return fmt.Errorf("vehicle %s: %w", vs.Name, err)
		}
		sim.AddMetric(metrics.NewControlEffort())
		sim.AddMetric(metrics.NewStability(stabilityBound))

		fmt.Printf("running %s (controller=%s)...\n", vs.Name, vcfg.Controller.Class)
		start := time.Now()

		result, err := sim.Run(context.Background(), x0, dynamo.Config{Dt: cfg.Dt, Duration: cfg.Duration})
		if err != nil {
			return fmt.Errorf("vehicle %s: %w", vs.Name, err)
		}
		elapsed := time.Since(start)

		runID, err := st.Save(vs.Name, cfg.Dt, cfg.Duration, seed, "rk4", vcfg.Controller.Class, result)
		if err != nil {
			return err
		}

		fmt.Printf("  completed in %v\n", elapsed)
		fmt.Printf("  run id: %s\n", runID)
		fmt.Printf("  steps: %d\n", len(result.States))
		fmt.Printf("  energy drift: %.6g\n", result.EnergyDrift)
		fmt.Printf("  control effort: %.6g\n", result.Metrics["control_effort"])
		fmt.Printf("  stability: %.6g\n\n", result.Metrics["stability"])
	}

	return nil
}

// runSweep runs the first vehicle of the resolved scenario as a seeded
// dynamo.Ensemble, reporting mean and standard deviation of each metric
// across runs. With --jitter 0 every seed starts from the same x0, so the
// spread reported is exactly zero for this deterministic vehicle model;
// a positive --jitter perturbs each run's x0 to exercise the ensemble's
// robustness-sweep purpose for real.
func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildScenario(cmd)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	if len(cfg.Vehicles) == 0 {
		return fmt.Errorf("scenario has no vehicles to sweep")
	}
	vs := cfg.Vehicles[0]

	vcfg, err := vs.BuildVehicle()
	if err != nil {
		return fmt.Errorf("vehicle %s: %w", vs.Name, err)
	}

	sim, x0, err := buildSimulator(vcfg, cfg.Dt)
	if err != nil {
		return fmt.Errorf("vehicle %s: %w", vs.Name, err)
	}
	sim.AddMetric(metrics.NewControlEffort())
	sim.AddMetric(metrics.NewStability(stabilityBound))

	ens := dynamo.NewEnsemble(sim, sweepRuns, seed)
	ens.SetJitter(sweepJitter)

	fmt.Printf("sweeping %s (controller=%s) across %d seeded runs starting at %d...\n", vs.Name, vcfg.Controller.Class, sweepRuns, seed)
	start := time.Now()

	results, err := ens.Run(context.Background(), x0, dynamo.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return fmt.Errorf("vehicle %s: %w", vs.Name, err)
	}
	elapsed := time.Since(start)

	fmt.Printf("  completed %d runs in %v\n\n", len(results), elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV")
	for _, name := range []string{"control_effort", "stability"} {
		vals := make([]float64, len(results))
		for i, r := range results {
			vals[i] = r.Metrics[name]
		}
		mean, stddev := meanStddev(vals)
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\n", name, mean, stddev)
	}
	energyVals := make([]float64, len(results))
	for i, r := range results {
		energyVals[i] = r.EnergyDrift
	}
	mean, stddev := meanStddev(energyVals)
	fmt.Fprintf(w, "energy_drift\t%.6g\t%.6g\n", mean, stddev)
	return w.Flush()
}

func meanStddev(vals []float64) (mean, stddev float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean = sum / float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return mean, math.Sqrt(variance)
}

func runDirectory(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := directory.New(slog.Default())
	fmt.Printf("directory listening on %s (ctrl-c to stop)\n", directoryAddr)
	return srv.ListenAndServe(ctx, directoryAddr)
}

func runNode(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	vcfg := config.GetPreset(preset)
	if vcfg == nil {
		return fmt.Errorf("unknown vehicle preset %q", preset)
	}
	sim, x0, err := buildSimulator(vcfg, dt)
	if err != nil {
		return err
	}

	n := node.New(nodeName, slog.Default())
	if err := n.Connect(ctx, directoryAddr); err != nil {
		return fmt.Errorf("connect to directory at %s: %w", directoryAddr, err)
	}
	defer n.Shutdown()

	if err := n.Advertise(publishTopic, "mvsim.Odometry"); err != nil {
		return err
	}

	restart := make(chan struct{}, 1)
	if err := n.AdvertiseService("reset", "mvsim.Empty", "mvsim.GenericAnswer", func(in []byte) ([]byte, error) {
		select {
		case restart <- struct{}{}:
		default:
		}
		env, err := wire.Pack(wire.TypeGenericAnswer, wire.GenericAnswer{Success: true})
		if err != nil {
			return nil, err
		}
		return env.Payload, nil
	}); err != nil {
		return err
	}

	fmt.Printf("node %s publishing %s, serving reset, connected to %s (ctrl-c to stop)\n", nodeName, publishTopic, directoryAddr)

	x := x0
	t := 0.0
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-restart:
			x = x0
			t = 0
		case <-ticker.C:
			x = sim.StepOnce(x, t, dt)
			t += dt

			payload, err := encodeOdometry(nodeName, t, x)
			if err != nil {
				return err
			}
			if err := n.Publish(publishTopic, "mvsim.Odometry", payload); err != nil {
				slog.Default().Warn("publish failed", "node", nodeName, "error", err)
			}
		}
	}
}

// odometry is the publish-side shape for the "mvsim.Odometry" topic type:
// the chassis planar state plus the elapsed simulation time.
type odometry struct {
	Node string    `msgpack:"node"`
	Time float64   `msgpack:"time"`
	X    []float64 `msgpack:"x"`
}

func encodeOdometry(name string, t float64, x dynamo.State) ([]byte, error) {
	env, err := wire.Pack("mvsim.Odometry", odometry{Node: name, Time: t, X: []float64(x)})
	if err != nil {
		return nil, err
	}
	return env.Payload, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	topic := publishTopic
	if len(args) == 1 {
		topic = args[0]
	}
	if topic == "" {
		topic = "odom"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	n := node.New(nodeName, slog.Default())
	if err := n.Connect(ctx, directoryAddr); err != nil {
		return fmt.Errorf("connect to directory at %s: %w", directoryAddr, err)
	}
	defer n.Shutdown()

	return watchTopic(ctx, n, topic)
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
	fmt.Fprintln(w, "ID\tVEHICLE\tTIME\tDURATION\tDT\tCTRL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID, run.Model, run.Timestamp.Format("2006-01-02 15:04:05"), run.Duration, run.Dt, run.Controller)
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
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nvehicle: %s\nsamples: %d\n\n", meta.ID, meta.Model, len(states))

	labels := []string{"x (m)", "y (m)", "yaw (rad)", "vx (m/s)", "vy (m/s)", "omega (rad/s)"}
	for varIdx := 0; varIdx < len(states[0]) && varIdx < len(labels); varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}
		graph := asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(labels[varIdx]))
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	out := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		States [][]float64          `json:"states"`
		Times  []float64            `json:"times"`
	}{meta, states, times}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func benchVehicle(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.05}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, d := range dts {
			vcfg := config.GetPreset("default")
			sim, x0, err := buildSimulator(vcfg, d)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := sim.Run(context.Background(), x0, dynamo.Config{Dt: d, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := len(result.States)
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n", dur, d, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
