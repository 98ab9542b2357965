package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/curriculumgen/internal/config"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/metrics"
)

// Global carries process-wide dependencies into every command.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	Fs      afero.Fs
	Stdout  io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"curriculumgen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Scan, validate and write the curriculum artifact"`
	Validate ValidateCmd `cmd:"" help:"Run every check without writing the artifact"`
	Discover DiscoverCmd `cmd:"" help:"List discovered content files and how each is represented"`
	Query    QueryCmd    `cmd:"" help:"Resolve a curriculum path to its topic, breadcrumbs and neighbours"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the artifact whenever content changes"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	if lvl, ok := parseLevel(os.Getenv(config.EnvLogLevel)); ok {
		level = lvl
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func parseLevel(s string) (slog.Level, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, false
	}
	return lvl, true
}

// ContentFlags override the content and output settings of the config file.
type ContentFlags struct {
	Content string `name:"content" help:"Content directory (overrides content.dir)"`
	Output  string `short:"o" name:"output" help:"Artifact path (overrides output.path)"`
	Format  string `name:"format" help:"Artifact format: typescript or json (overrides output.format)"`
}

// LoadConfig loads the configuration file and applies command-line overrides.
func (c *CLI) LoadConfig(flags ContentFlags) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(config.Overrides{
		ContentDir: flags.Content,
		OutputPath: flags.Output,
		Format:     flags.Format,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRecorder returns a Prometheus recorder and its registry when metrics are
// wanted, otherwise a no-op recorder and a nil registry.
func newRecorder(enabled bool) (metrics.Recorder, *prometheus.Registry) {
	if !enabled {
		return metrics.NoopRecorder{}, nil
	}
	reg := prometheus.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), reg
}

// flushTextfile writes reg to path. Failures are logged; metrics never fail a run.
func flushTextfile(reg *prometheus.Registry, path string) {
	if reg == nil || path == "" {
		return
	}
	if err := metrics.WriteTextfile(reg, path); err != nil {
		slog.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
	}
}

func (g *Global) ctx() context.Context {
	if g.Context == nil {
		return context.Background()
	}
	return g.Context
}
