package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ContentFS returns an in-memory filesystem with root created and every entry
// of files written below it. Keys are slash-separated paths relative to root.
func ContentFS(t testing.TB, root string, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	WriteFiles(t, fsys, root, files)
	return fsys
}

// WriteFiles writes files below root on fsys, creating directories as needed.
func WriteFiles(t testing.TB, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	for rel, body := range files {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(root, filepath.FromSlash(rel)), []byte(body), 0o644))
	}
}
