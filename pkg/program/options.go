package program

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/vtree/pkg/scheduler"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the instrumentation name used when no tracer is
// given.
const defaultTracerName = "github.com/vango-dev/vtree/pkg/program"

// Option configures a mounted program.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	frames       scheduler.Frames
	registry     prometheus.Registerer
	metricLabels prometheus.Labels
	tracer       trace.Tracer
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
		frames: scheduler.TickerFrames(scheduler.DefaultFrameInterval),
		tracer: otel.Tracer(defaultTracerName),
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithFrames sets the frame source of the scheduler.
// Default: scheduler.TickerFrames(scheduler.DefaultFrameInterval).
func WithFrames(frames scheduler.Frames) Option {
	return func(c *config) {
		c.frames = frames
	}
}

// WithMetrics registers runtime metrics with reg. labels are attached to
// every metric and must differ between runtimes sharing reg.
func WithMetrics(reg prometheus.Registerer, labels prometheus.Labels) Option {
	return func(c *config) {
		c.registry = reg
		c.metricLabels = labels
	}
}

// WithTracer sets the tracer used for cycle spans.
// Default: the global otel tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}
