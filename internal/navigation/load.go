package navigation

import (
	"encoding/json"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/curriculumgen/internal/curriculum"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
)

// Load reads a JSON artifact (output.format: json) back into a tree.
func Load(fsys afero.Fs, path string) (curriculum.Tree, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read curriculum artifact").
			Fatal().WithContext("path", path).Build()
	}
	var tree curriculum.Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "curriculum artifact is not a JSON module list").
			Fatal().WithContext("path", path).Build()
	}
	if tree == nil {
		tree = curriculum.Tree{}
	}
	return tree, nil
}
