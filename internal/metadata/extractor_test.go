package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_FallbackChain(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		slug        string
		title       string
		description string
		source      Source
	}{
		{
			name:        "front matter wins",
			raw:         "---\ntitle: Welcome\ndescription: Start here\n---\n# Hi\n",
			slug:        "index",
			title:       "Welcome",
			description: "Start here",
			source:      SourceFrontMatter,
		},
		{
			name:        "export fills missing description",
			raw:         "---\ntitle: Basics\n---\nexport const metadata = { title: 'Ignored', description: \"From export\" };\n",
			slug:        "basics",
			title:       "Basics",
			description: "From export",
			source:      SourceFrontMatter,
		},
		{
			name:        "export only",
			raw:         "import X from './x'\n\nexport const metadata = {\n  title: `Packets`,\n  description: 'How packets move',\n}\n\n# Body\n",
			slug:        "packets",
			title:       "Packets",
			description: "How packets move",
			source:      SourceExport,
		},
		{
			name:   "slug fallback",
			raw:    "# Just a body\n",
			slug:   "intro_to-networking",
			title:  "Intro To Networking",
			source: SourceSlug,
		},
		{
			name:   "malformed front matter is ignored",
			raw:    "---\ntitle: [broken\n---\n",
			slug:   "broken-page",
			title:  "Broken Page",
			source: SourceSlug,
		},
		{
			name:   "unclosed front matter is ignored",
			raw:    "---\ntitle: Never closed\n",
			slug:   "open",
			title:  "Open",
			source: SourceSlug,
		},
		{
			name:   "rejected export shape falls back to slug",
			raw:    "export const metadata = { title: buildTitle(), description: 'x' }\n",
			slug:   "dynamic",
			title:  "Dynamic",
			source: SourceSlug,
		},
		{
			name:   "non-string title is rendered",
			raw:    "---\ntitle: 2024\n---\n",
			slug:   "year",
			title:  "2024",
			source: SourceFrontMatter,
		},
		{
			name:   "blank title counts as missing",
			raw:    "---\ntitle: \"  \"\n---\n",
			slug:   "blank",
			title:  "Blank",
			source: SourceSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := Extract([]byte(tt.raw), tt.slug)
			require.Equal(t, tt.title, md.Title)
			require.Equal(t, tt.description, md.Description)
			require.Equal(t, tt.source, md.TitleSource)
		})
	}
}

func TestExtract_Redirect(t *testing.T) {
	cases := map[string]bool{
		"---\nredirect: true\n---\n":                   true,
		"---\nredirect: \"yes\"\n---\n":                true,
		"---\nredirect: 1\n---\n":                      true,
		"---\nredirect: false\n---\n":                  false,
		"---\nredirect: \" ON \"\n---\n":               true,
		"---\nredirect: \"no\"\n---\n":                 false,
		"---\nredirect: 2\n---\n":                      false,
		"---\ntitle: x\n---\n":                         false,
		"export const metadata = { redirect: true }\n": false,
	}
	for raw, want := range cases {
		require.Equal(t, want, Extract([]byte(raw), "index").Redirect, raw)
	}
}

func TestTruthy(t *testing.T) {
	require.True(t, truthy(true))
	require.True(t, truthy(1))
	require.True(t, truthy("Yes"))
	require.False(t, truthy(0))
	require.False(t, truthy("off"))
	require.False(t, truthy(1.0))
	require.False(t, truthy(nil))
}

func TestExtract_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"---",
		"---\n---",
		"export const metadata = {",
		"export const metadata = { title: 'unterminated }",
		"export const metadata = { 'a': [1, [2]] }",
		"\x00\xff\xfe",
	}
	for _, in := range inputs {
		md := Extract([]byte(in), "fallback")
		require.Equal(t, "Fallback", md.Title, "input %q", in)
	}
}

func TestTitleFromSlug(t *testing.T) {
	require.Equal(t, "Basics", TitleFromSlug("basics"))
	require.Equal(t, "F1 Intro", TitleFromSlug("F1_Intro"))
	require.Equal(t, "Intro To TCP", TitleFromSlug("intro_to_TCP"))
	require.Equal(t, "Foundational", TitleFromSlug("Foundational"))
	require.Equal(t, "A B", TitleFromSlug("--a__b--"))
	require.Empty(t, TitleFromSlug(""))
}
