package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportedObject_Accepted(t *testing.T) {
	src := `
import Diagram from '../components/Diagram'

// page metadata
export const metadata: PageMeta = {
  title: "Routing \"101\"",
  'description': 'Tables, hops\nand more', /* block */
  order: -1.5e1,
  draft: false,
  tags: ['net', "ip", 3, true,],
}
`
	fields, ok := ExportedObject(src)
	require.True(t, ok)
	require.Equal(t, `Routing "101"`, fields["title"])
	require.Equal(t, "Tables, hops\nand more", fields["description"])
	require.Equal(t, -15.0, fields["order"])
	require.Equal(t, false, fields["draft"])
	require.Equal(t, []any{"net", "ip", 3.0, true}, fields["tags"])
}

func TestExportedObject_Rejected(t *testing.T) {
	cases := map[string]string{
		"no export":          "const metadata = { title: 'x' }",
		"nested object":      "export const metadata = { title: 'x', seo: { a: 1 } }",
		"nested array":       "export const metadata = { tags: [[1]] }",
		"identifier value":   "export const metadata = { title: TITLE }",
		"null value":         "export const metadata = { title: null }",
		"call":               "export const metadata = { title: t('x') }",
		"spread":             "export const metadata = { ...base, title: 'x' }",
		"template subst":     "export const metadata = { title: `Hello ${name}` }",
		"missing comma":      "export const metadata = { title: 'x' description: 'y' }",
		"unterminated":       "export const metadata = { title: 'x'",
		"newline in string":  "export const metadata = { title: 'x\ny' }",
		"bad unicode escape": `export const metadata = { title: '\uZZZZ' }`,
		"not an object":      "export const metadata = makeMeta()",
		"numeric key":        "export const metadata = { 1: 'x' }",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := ExportedObject(src)
			require.False(t, ok)
		})
	}
}

func TestExportedObject_FirstDeclarationWins(t *testing.T) {
	src := "export let metadata = { title: 'first' }\nexport var metadata = { title: 'second' }\n"
	fields, ok := ExportedObject(src)
	require.True(t, ok)
	require.Equal(t, "first", fields["title"])
}

func TestExportedObject_Escapes(t *testing.T) {
	fields, ok := ExportedObject(`export const metadata = { title: 'café \'quoted\' \\ done' }`)
	require.True(t, ok)
	require.Equal(t, `café 'quoted' \ done`, fields["title"])
}
