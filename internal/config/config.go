package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/foundation/normalization"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "curriculumgen.yaml"

// Config represents the generator configuration.
type Config struct {
	Content    ContentConfig    `yaml:"content"`
	Links      LinksConfig      `yaml:"links"`
	Output     OutputConfig     `yaml:"output"`
	Navigation NavigationConfig `yaml:"navigation"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ContentConfig describes the lesson content tree.
type ContentConfig struct {
	Dir          string   `yaml:"dir" validate:"required"`
	Extension    string   `yaml:"extension" validate:"required,startswith=."`
	IndexName    string   `yaml:"index_name" validate:"required"`
	ReservedDirs []string `yaml:"reserved_dirs,omitempty" validate:"dive,required"`
	MaxDepth     int      `yaml:"max_depth" validate:"gte=3,lte=256"`
}

// LinksConfig controls internal cross-reference validation.
type LinksConfig struct {
	Prefix    string `yaml:"prefix" validate:"required,startswith=/,endswith=/"`
	Aggregate bool   `yaml:"aggregate"` // report every broken link instead of stopping at the first
}

// OutputConfig describes the generated artifact.
type OutputConfig struct {
	Path   string `yaml:"path" validate:"required"`
	Format Format `yaml:"format" validate:"oneof=typescript json"`
	Symbol string `yaml:"symbol" validate:"required,jsident"`
}

// NavigationConfig controls breadcrumb rendering.
type NavigationConfig struct {
	RootLabel string `yaml:"root_label" validate:"required"`
	RootPath  string `yaml:"root_path" validate:"required,startswith=/"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Format selects the artifact encoding.
type Format string

const (
	FormatTypeScript Format = "typescript"
	FormatJSON       Format = "json"
)

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"typescript": FormatTypeScript,
	"ts":         FormatTypeScript,
	"json":       FormatJSON,
}, "")

// NormalizeFormat maps user input to a Format; unknown values return "".
func NormalizeFormat(s string) Format {
	return formatNormalizer.Normalize(s)
}

// Load reads configuration from path. A missing file at DefaultPath is not an
// error: defaults (plus environment overrides) are returned instead.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
				Fatal().WithContext("path", path).Build()
		}
	case os.IsNotExist(err) && (path == "" || path == DefaultPath):
		// Defaults only.
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			Fatal().WithContext("path", path).Build()
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides are command-line values applied on top of file and environment
// configuration. Empty fields leave the loaded value in place.
type Overrides struct {
	ContentDir string
	OutputPath string
	Format     string
}

// ApplyOverrides applies o and revalidates. A new output path without an
// explicit format re-infers the format from the path's extension.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.ContentDir != "" {
		c.Content.Dir = o.ContentDir
	}
	if o.OutputPath != "" {
		c.Output.Path = o.OutputPath
		c.Output.Format = formatFromPath(o.OutputPath)
	}
	if o.Format != "" {
		f, err := formatNormalizer.NormalizeWithError(o.Format)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "unsupported output format").
				Fatal().WithContext("fields", []string{"Config.Output.Format (oneof)"}).Build()
		}
		c.Output.Format = f
	}
	return Validate(c)
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := "# curriculumgen configuration\n# Paths are relative to the working directory.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
