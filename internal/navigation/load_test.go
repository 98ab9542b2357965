package navigation

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
)

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/nav.json", []byte(`[
  {"title": "Foundational", "slug": "T1_Foundational", "tier": "T1", "sections": [
    {"title": "Intro", "slug": "F1_Intro", "topics": [{"title": "Welcome", "slug": "index", "description": ""}]}
  ]}
]`), 0o644))

	tree, err := Load(fsys, "/nav.json")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, "Welcome", tree[0].Sections[0].Topics[0].Title)
}

func TestLoad_Errors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, err := Load(fsys, "/missing.json")
	require.ErrorIs(t, err, ferrors.ErrConfig)

	require.NoError(t, afero.WriteFile(fsys, "/bad.json", []byte("export const x = []"), 0o644))
	_, err = Load(fsys, "/bad.json")
	require.ErrorIs(t, err, ferrors.ErrConfig)
}
