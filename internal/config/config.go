package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.yaml"

	// DefaultFrameInterval is the scheduler frame interval.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultMetricsAddr is where `vtree bench --serve` exposes /metrics.
	DefaultMetricsAddr = "localhost:9090"

	// DefaultLogLevel is the log level when none is configured.
	DefaultLogLevel = "info"

	// DefaultListSize is the list size of a scenario that leaves it unset.
	DefaultListSize = 100

	// DefaultIterations is the cycle count of a scenario that leaves it unset.
	DefaultIterations = 50
)

// Mutation names how a bench scenario changes its list between cycles.
type Mutation string

const (
	MutationShuffle Mutation = "shuffle"
	MutationAppend  Mutation = "append"
	MutationRemove  Mutation = "remove"
	MutationReplace Mutation = "replace"
	MutationText    Mutation = "text"
)

// Config is the contents of vtree.yaml.
type Config struct {
	// FrameInterval is the delay between a scheduled frame and its draw.
	FrameInterval time.Duration `yaml:"frame_interval,omitempty" validate:"gte=0,lte=1s"`

	// MetricsAddr is the listen address of the metrics endpoint.
	MetricsAddr string `yaml:"metrics_addr,omitempty" validate:"hostname_port"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty" validate:"oneof=debug info warn error"`

	// Scenarios are the bench workloads, run in order.
	Scenarios []Scenario `yaml:"scenarios,omitempty" validate:"unique=Name,dive"`

	configPath string
}

// Scenario is one bench workload: a list of ListSize items mutated and
// redrawn Iterations times.
type Scenario struct {
	Name       string   `yaml:"name" validate:"required"`
	ListSize   int      `yaml:"list_size,omitempty" validate:"gte=1,lte=100000"`
	Iterations int      `yaml:"iterations,omitempty" validate:"gte=1"`
	Mutation   Mutation `yaml:"mutation,omitempty" validate:"oneof=shuffle append remove replace text"`
	Keyed      bool     `yaml:"keyed,omitempty"`
	Seed       int64    `yaml:"seed,omitempty"`
}

// DefaultScenarios are used when the config defines none.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "keyed-shuffle", ListSize: 1000, Iterations: 100, Mutation: MutationShuffle, Keyed: true, Seed: 1},
		{Name: "keyed-append", ListSize: 1000, Iterations: 100, Mutation: MutationAppend, Keyed: true, Seed: 1},
		{Name: "unkeyed-remove", ListSize: 1000, Iterations: 100, Mutation: MutationRemove, Seed: 1},
		{Name: "text-update", ListSize: 1000, Iterations: 100, Mutation: MutationText, Keyed: true, Seed: 1},
	}
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		FrameInterval: DefaultFrameInterval,
		MetricsAddr:   DefaultMetricsAddr,
		LogLevel:      DefaultLogLevel,
		Scenarios:     DefaultScenarios(),
	}
}

// Load reads vtree.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads, defaults and validates the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E200").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Run without --config to use the built-in scenarios")
		}
		return nil, errors.New("E200").Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		e := errors.New("E201").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Durations are written like 16ms; list_size and iterations are integers")
		if line := yamlErrorLine(err); line > 0 {
			e = e.WithLocation(path, line, 0)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// yamlErrorLine returns the first line number yaml.v3 reports in err, or 0.
func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

// SaveTo writes the configuration as YAML to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E200").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.FrameInterval == 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = DefaultMetricsAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if len(c.Scenarios) == 0 {
		c.Scenarios = DefaultScenarios()
	}
	for i := range c.Scenarios {
		s := &c.Scenarios[i]
		if s.ListSize == 0 {
			s.ListSize = DefaultListSize
		}
		if s.Iterations == 0 {
			s.Iterations = DefaultIterations
		}
		if s.Mutation == "" {
			s.Mutation = MutationShuffle
		}
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.New("E202").Wrap(err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	e := errors.New("E202").WithDetail(strings.Join(problems, "; "))
	if c.configPath != "" {
		e = e.WithSuggestion("Fix the values in " + c.configPath)
	}
	return e
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "unique":
		return field + " must not repeat a " + strings.ToLower(fe.Param())
	case "hostname_port":
		return field + " must be host:port"
	default:
		return field + " fails " + fe.Tag() + " " + fe.Param()
	}
}

// Scenario returns the scenario called name.
func (c *Config) Scenario(name string) (*Scenario, error) {
	names := make([]string, 0, len(c.Scenarios))
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], nil
		}
		names = append(names, c.Scenarios[i].Name)
	}
	return nil, errors.New("E203").
		WithDetailf("No scenario named %q", name).
		WithSuggestion("Defined scenarios: " + strings.Join(names, ", "))
}

// SlogLevel returns LogLevel as a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Exists reports whether dir contains a config file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E200").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest config file above the working
// directory, falling back to defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}
