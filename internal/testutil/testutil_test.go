package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentFSAndAssertions(t *testing.T) {
	fsys := ContentFS(t, "/content", map[string]string{
		"T1_A/S1/index.mdx": "---\ntitle: Intro\n---\n",
	})

	NewFileAssertions(t, fsys, "/content").
		AssertFileExists("T1_A/S1/index.mdx").
		AssertFileNotExists("T1_A/S1/other.mdx").
		AssertFileContains("T1_A/S1/index.mdx", "title: Intro").
		AssertFileEquals("T1_A/S1/index.mdx", "---\ntitle: Intro\n---\n")

	WriteFiles(t, fsys, "/content", map[string]string{"T1_A/S1/other.mdx": "x"})
	require.Equal(t, "x", NewFileAssertions(t, fsys, "/content").GetFileContent("T1_A/S1/other.mdx"))
}
