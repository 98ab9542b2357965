package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/testutil"
)

func memTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	return testutil.ContentFS(t, "/content", files)
}

func slugsOf(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Slug
	}
	return out
}

func TestScan_SortedAndFiltered(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"T2_Advanced/A1_Routing/index.mdx": "",
		"T1_Foundational/F1_Intro/basics.mdx": "",
		"T1_Foundational/F1_Intro/index.mdx":  "",
		"T1_Foundational/F1_Intro/notes.txt":  "",
		"T1_Foundational/F1_Intro/.draft.mdx": "",
		"labs/L1/lab.mdx":                     "",
		"T1_Foundational/orphan.mdx":          "",
		".cache/x.mdx":                        "",
	})

	files, err := NewScanner(fsys, ScannerOptions{Extension: ".mdx", ReservedDirs: []string{"labs"}}).Scan("/content")
	require.NoError(t, err)
	require.Equal(t, []string{
		"T1_Foundational/F1_Intro/basics",
		"T1_Foundational/F1_Intro/index",
		"T1_Foundational/orphan",
		"T2_Advanced/A1_Routing/index",
	}, slugsOf(files))

	f := files[0]
	require.Equal(t, "T1_Foundational/F1_Intro/basics.mdx", f.Rel)
	require.Equal(t, "basics", f.Name)
	require.Equal(t, "T1_Foundational/F1_Intro", f.Dir())
	require.Equal(t, filepath.Join("/content", "T1_Foundational", "F1_Intro", "basics.mdx"), f.Path)
}

func TestScan_ReservedOnlyAtTopLevel(t *testing.T) {
	fsys := memTree(t, map[string]string{"T1_A/labs/x.mdx": ""})
	files, err := NewScanner(fsys, ScannerOptions{Extension: ".mdx", ReservedDirs: []string{"labs"}}).Scan("/content")
	require.NoError(t, err)
	require.Equal(t, []string{"T1_A/labs/x"}, slugsOf(files))
}

func TestScan_DepthGuard(t *testing.T) {
	deep := strings.Repeat("d/", 6) + "leaf.mdx"
	fsys := memTree(t, map[string]string{deep: ""})

	_, err := NewScanner(fsys, ScannerOptions{Extension: ".mdx", MaxDepth: 4}).Scan("/content")
	require.ErrorIs(t, err, ferrors.ErrScan)

	files, err := NewScanner(fsys, ScannerOptions{Extension: ".mdx", MaxDepth: 6}).Scan("/content")
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestScan_MissingBase(t *testing.T) {
	_, err := NewScanner(afero.NewMemMapFs(), ScannerOptions{Extension: ".mdx"}).Scan("/nope")
	require.ErrorIs(t, err, ferrors.ErrScan)
	p, _ := ferrors.ContextString(err, "path")
	require.Equal(t, "/nope", p)
}

func TestScan_BaseIsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/file.mdx", nil, 0o644))
	_, err := NewScanner(fsys, ScannerOptions{Extension: ".mdx"}).Scan("/file.mdx")
	require.ErrorIs(t, err, ferrors.ErrScan)
}

func TestScan_DoesNotFollowSymlinkedDirectories(t *testing.T) {
	base := t.TempDir()
	section := filepath.Join(base, "T1_A", "S1")
	require.NoError(t, os.MkdirAll(section, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(section, "a.mdx"), nil, 0o644))
	// A cycle back to the module directory.
	if err := os.Symlink(filepath.Join(base, "T1_A"), filepath.Join(section, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(section, "a.mdx"), filepath.Join(section, "alias.mdx")))

	files, err := NewScanner(afero.NewOsFs(), ScannerOptions{Extension: ".mdx", MaxDepth: 8}).Scan(base)
	require.NoError(t, err)
	require.Equal(t, []string{"T1_A/S1/a", "T1_A/S1/alias"}, slugsOf(files))
}

func TestReadAll(t *testing.T) {
	fsys := memTree(t, map[string]string{"T1_A/S1/a.mdx": "alpha", "T1_A/S1/b.mdx": "beta"})
	files, err := NewScanner(fsys, ScannerOptions{Extension: ".mdx"}).Scan("/content")
	require.NoError(t, err)

	docs, err := ReadAll(fsys, files)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "alpha", string(docs[0].Raw))
	require.Equal(t, "T1_A/S1/b", docs[1].Slug)

	require.NoError(t, fsys.Remove(files[1].Path))
	_, err = ReadAll(fsys, files)
	require.ErrorIs(t, err, ferrors.ErrScan)
}

func TestSlugs(t *testing.T) {
	set := Slugs([]File{{Slug: "a/b/c"}, {Slug: "a/b/d"}})
	require.True(t, set.Has("a/b/c"))
	require.Equal(t, 2, set.Len())
}
