package commands

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"git.home.luguber.info/inful/curriculumgen/internal/content"
	"git.home.luguber.info/inful/curriculumgen/internal/curriculum"
)

// Representation states reported by discover.
const (
	StateNavigable     = "navigable"
	StateRedirect      = "redirect"
	StateUnrepresented = "unrepresented"
)

// DiscoveredFile is one line of discover output.
type DiscoveredFile struct {
	Slug  string `json:"slug"`
	File  string `json:"file"`
	State string `json:"state"`
}

// DiscoverCmd implements the 'discover' command. It scans and builds without
// validating, so it also shows files a generate run would reject.
type DiscoverCmd struct {
	ContentFlags `embed:""`
	JSON         bool `name:"json" help:"Print JSON instead of a table"`
}

func (d *DiscoverCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.LoadConfig(d.ContentFlags)
	if err != nil {
		return err
	}
	files, err := content.NewScanner(global.Fs, content.ScannerOptions{
		Extension:    cfg.Content.Extension,
		ReservedDirs: cfg.Content.ReservedDirs,
		MaxDepth:     cfg.Content.MaxDepth,
	}).Scan(cfg.Content.Dir)
	if err != nil {
		return err
	}
	built, err := curriculum.NewBuilder(global.Fs, curriculum.BuilderOptions{
		Extension:    cfg.Content.Extension,
		IndexName:    cfg.Content.IndexName,
		ReservedDirs: cfg.Content.ReservedDirs,
	}, nil).Build(cfg.Content.Dir, files)
	if err != nil {
		return err
	}

	out := make([]DiscoveredFile, len(files))
	for i, f := range files {
		state := StateUnrepresented
		switch {
		case slices.Contains(built.Redirects, f.Slug):
			state = StateRedirect
		case built.Represented.Has(f.Slug):
			state = StateNavigable
		}
		out[i] = DiscoveredFile{Slug: f.Slug, File: f.Rel, State: state}
	}

	if d.JSON {
		enc := json.NewEncoder(global.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	tw := tabwriter.NewWriter(global.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SLUG\tSTATE")
	for _, f := range out {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f.Slug, f.State)
	}
	return tw.Flush()
}
