package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/dom/htmldom"
	"github.com/vango-dev/vtree/pkg/program"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/scheduler"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type benchOptions struct {
	ticker   bool
	serve    bool
	jsonPath string
}

func benchCmd(flags *globalFlags) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench [scenario...]",
		Short: "Run reconciliation workloads",
		Long: `Run the bench scenarios from ` + config.ConfigFileName + ` (or the built-in ones)
through a mounted program and report cycle latencies and DOM mutation
counts.

By default every change is drawn and its frame is fired by hand, so each
iteration is exactly one cycle. With --ticker frames come from a timer
at the configured frame interval and changes between frames coalesce.

Examples:
  vtree bench
  vtree bench keyed-shuffle --json -
  vtree bench --ticker --serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBench(ctx, cmd.OutOrStdout(), cfg, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ticker, "ticker", false, "Use timed frames instead of firing each frame by hand")
	cmd.Flags().BoolVar(&opts.serve, "serve", false, "Serve /metrics and keep running after the scenarios finish")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "Write the report as JSON to a file (- for stdout)")

	return cmd
}

func runBench(ctx context.Context, out io.Writer, cfg *config.Config, names []string, opts benchOptions) error {
	logger := newLogger(cfg)

	scenarios := cfg.Scenarios
	if len(names) > 0 {
		scenarios = nil
		seen := make(map[string]bool)
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			s, err := cfg.Scenario(name)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, *s)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if opts.serve {
		srv, err := startMetricsServer(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer srv.Close()
		info(out, "Metrics at http://%s/metrics", srv.Addr())
	}

	printBanner(out)
	fmt.Fprintln(out)

	report := benchReport{
		Version: version,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("running scenario", "scenario", s.Name, "list_size", s.ListSize, "iterations", s.Iterations)

		res, err := runScenario(ctx, s, cfg, reg, opts.ticker, logger)
		if err != nil {
			return err
		}
		report.Scenarios = append(report.Scenarios, res)
		writeScenario(out, res)
	}

	if opts.jsonPath != "" {
		if err := writeJSON(opts.jsonPath, report); err != nil {
			return err
		}
	}

	if opts.serve {
		info(out, "Scenarios done; serving metrics until interrupted")
		<-ctx.Done()
	}
	return nil
}

type benchReport struct {
	Version   string           `json:"version"`
	Go        string           `json:"go"`
	OS        string           `json:"os"`
	Arch      string           `json:"arch"`
	Scenarios []scenarioResult `json:"scenarios"`
}

type scenarioResult struct {
	Name       string      `json:"name"`
	Mutation   string      `json:"mutation"`
	Keyed      bool        `json:"keyed"`
	ListSize   int         `json:"list_size"`
	Iterations int         `json:"iterations"`
	Frames     string      `json:"frames"`
	Draws      int64       `json:"draws"`
	ElapsedMS  float64     `json:"elapsed_ms"`
	LatencyMS  latencyInfo `json:"latency_ms"`
	Mutations  int         `json:"dom_mutations"`
	Created    int         `json:"dom_nodes_created"`
	Verified   bool        `json:"verified"`
}

type latencyInfo struct {
	Min float64 `json:"min"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

// runScenario mounts the scenario's workload and drives it for
// s.Iterations changes. The final DOM is compared with a fresh rendering
// of the final model.
func runScenario(ctx context.Context, s config.Scenario, cfg *config.Config, reg prometheus.Registerer, ticker bool, logger *slog.Logger) (scenarioResult, error) {
	w := newWorkload(s)
	doc := htmldom.New()
	placeholder := doc.CreateElement("div")
	doc.Root().AppendChild(placeholder)

	var (
		frames scheduler.Frames
		manual *scheduler.ManualFrames
	)
	if ticker {
		frames = scheduler.TickerFrames(cfg.FrameInterval)
	} else {
		manual = &scheduler.ManualFrames{}
		frames = manual
	}

	rt := program.Mount(doc, placeholder, w.program(),
		program.WithLogger(logger),
		program.WithFrames(frames),
		program.WithMetrics(reg, prometheus.Labels{"scenario": s.Name}),
	)
	doc.ResetStats()
	w.views.Store(0)

	latencies := make([]time.Duration, 0, s.Iterations)
	start := time.Now()
	for i := 0; i < s.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return scenarioResult{}, err
		}
		t := time.Now()
		rt.Dispatch(mutate{})
		latencies = append(latencies, time.Since(t))
		if manual != nil {
			manual.Fire()
		}
	}
	if ticker {
		if err := waitIdle(ctx, rt, cfg.FrameInterval); err != nil {
			return scenarioResult{}, err
		}
	}
	elapsed := time.Since(start)
	stats := doc.Stats()
	draws := w.views.Load()

	verified, err := verify(rt.Root(), w.view(rt.Model()))
	if err != nil {
		return scenarioResult{}, err
	}
	logger.Debug("scenario done", "scenario", s.Name, "verified", verified)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	res := scenarioResult{
		Name:       s.Name,
		Mutation:   string(s.Mutation),
		Keyed:      s.Keyed,
		ListSize:   s.ListSize,
		Iterations: s.Iterations,
		Frames:     "manual",
		Draws:      draws,
		ElapsedMS:  ms(elapsed),
		Mutations:  stats.Mutations(),
		Created:    stats.Created,
		Verified:   verified,
	}
	if ticker {
		res.Frames = "ticker " + cfg.FrameInterval.String()
	}
	if len(latencies) > 0 {
		res.LatencyMS = latencyInfo{
			Min: ms(latencies[0]),
			P50: ms(percentile(latencies, 0.50)),
			P95: ms(percentile(latencies, 0.95)),
			P99: ms(percentile(latencies, 0.99)),
			Max: ms(latencies[len(latencies)-1]),
		}
	}
	return res, nil
}

// waitIdle polls until the runtime has drawn every pending change.
func waitIdle(ctx context.Context, rt *program.Runtime[benchModel], interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for rt.State() != scheduler.StateIdle {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
	return nil
}

// verify compares the live root with a fresh rendering of want.
func verify(root dom.Node, want *vdom.VNode) (bool, error) {
	got, err := htmldom.OuterHTML(root)
	if err != nil {
		return false, err
	}
	fresh := render.NewRenderer(htmldom.New(), render.RendererConfig{}).
		Render(want, render.NewEventRoot(func(vdom.Msg, bool) {}))
	expected, err := htmldom.OuterHTML(fresh)
	if err != nil {
		return false, err
	}
	return got == expected, nil
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := int(math.Ceil(float64(len(sorted))*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func writeScenario(w io.Writer, res scenarioResult) {
	keyed := "unkeyed"
	if res.Keyed {
		keyed = "keyed"
	}
	fmt.Fprintf(w, "=== %s ===\n", res.Name)
	fmt.Fprintf(w, "Workload: %s, %s, %d items, %d iterations, %s frames\n",
		res.Mutation, keyed, res.ListSize, res.Iterations, res.Frames)
	fmt.Fprintf(w, "Draws: %d in %.1f ms\n", res.Draws, res.ElapsedMS)
	fmt.Fprintln(w, "Dispatch latency:")
	fmt.Fprintf(w, "  min: %.3f ms\n", res.LatencyMS.Min)
	fmt.Fprintf(w, "  p50: %.3f ms\n", res.LatencyMS.P50)
	fmt.Fprintf(w, "  p95: %.3f ms\n", res.LatencyMS.P95)
	fmt.Fprintf(w, "  p99: %.3f ms\n", res.LatencyMS.P99)
	fmt.Fprintf(w, "  max: %.3f ms\n", res.LatencyMS.Max)
	fmt.Fprintf(w, "DOM: %d mutations, %d nodes created\n", res.Mutations, res.Created)
	if res.Verified {
		success(w, "Live DOM matches a fresh render")
	} else {
		warn(w, "Live DOM differs from a fresh render")
	}
	fmt.Fprintln(w)
}

func writeJSON(path string, report benchReport) error {
	var out io.Writer
	if path == "-" {
		out = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
