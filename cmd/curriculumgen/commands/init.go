package commands

import (
	"fmt"

	"git.home.luguber.info/inful/curriculumgen/internal/config"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(global *Global, root *CLI) error {
	_, _ = fmt.Fprintf(global.Stdout, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "initialization failed").
			WithContext("path", root.Config).Build()
	}
	_, _ = fmt.Fprintln(global.Stdout, "initialized successfully")
	return nil
}
