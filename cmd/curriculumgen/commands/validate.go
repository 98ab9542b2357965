package commands

import (
	"fmt"

	"git.home.luguber.info/inful/curriculumgen/internal/pipeline"
)

// ValidateCmd implements the 'validate' command: the full pipeline as a dry run.
type ValidateCmd struct {
	ContentFlags `embed:""`
}

func (v *ValidateCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.LoadConfig(v.ContentFlags)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(global.ctx(), cfg, pipeline.Options{Fs: global.Fs, DryRun: true})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(global.Stdout, "OK: %d files, %d topics, %d redirect-only\n",
		len(res.Files), res.Tree.TopicCount(), len(res.Redirects))
	return nil
}
