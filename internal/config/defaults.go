package config

import "strings"

const (
	DefaultContentDir = "src/content/curriculum"
	DefaultExtension  = ".mdx"
	DefaultIndexName  = "index"
	DefaultMaxDepth   = 32
	DefaultLinkPrefix = "/curriculum/"
	DefaultOutputPath = "src/data/curriculum.ts"
	DefaultSymbol     = "curriculum"
	DefaultRootLabel  = "Curriculum"
	DefaultRootPath   = "/curriculum"
)

// DefaultReservedDirs lists top-level content directories that are never part of the tree.
var DefaultReservedDirs = []string{"labs"}

func applyDefaults(cfg *Config) {
	c := &cfg.Content
	if c.Dir == "" {
		c.Dir = DefaultContentDir
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.IndexName == "" {
		c.IndexName = DefaultIndexName
	}
	if c.ReservedDirs == nil {
		c.ReservedDirs = append([]string(nil), DefaultReservedDirs...)
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}

	if cfg.Links.Prefix == "" {
		cfg.Links.Prefix = DefaultLinkPrefix
	}

	o := &cfg.Output
	if o.Path == "" {
		o.Path = DefaultOutputPath
	}
	if o.Format == "" {
		o.Format = formatFromPath(o.Path)
	} else if f := NormalizeFormat(string(o.Format)); f != "" {
		o.Format = f
	}
	if o.Symbol == "" {
		o.Symbol = DefaultSymbol
	}

	if cfg.Navigation.RootLabel == "" {
		cfg.Navigation.RootLabel = DefaultRootLabel
	}
	if cfg.Navigation.RootPath == "" {
		cfg.Navigation.RootPath = DefaultRootPath
	}
}

func formatFromPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return FormatJSON
	}
	return FormatTypeScript
}
