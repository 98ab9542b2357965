package commands

import (
	"fmt"

	"git.home.luguber.info/inful/curriculumgen/internal/pipeline"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	ContentFlags `embed:""`
	Textfile     string `name:"metrics-textfile" help:"Write Prometheus metrics to this textfile (overrides metrics.textfile)"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g.ContentFlags)
	if err != nil {
		return err
	}
	textfile := cfg.Metrics.Textfile
	if g.Textfile != "" {
		textfile = g.Textfile
	}
	rec, reg := newRecorder(textfile != "")

	res, err := pipeline.Run(global.ctx(), cfg, pipeline.Options{Fs: global.Fs, Recorder: rec})
	flushTextfile(reg, textfile)
	if err != nil {
		return err
	}

	state := "unchanged"
	if res.Write.Written {
		state = "written"
	}
	_, _ = fmt.Fprintf(global.Stdout, "%s %s: %d modules, %d topics (%s)\n",
		cfg.Output.Path, state, len(res.Tree), res.Tree.TopicCount(), cfg.Output.Format)
	return nil
}
