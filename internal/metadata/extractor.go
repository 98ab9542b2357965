// Package metadata extracts display metadata from lesson content files.
//
// Extraction never fails. Each field is resolved through a fallback chain:
// YAML front matter first, then an exported `metadata` object literal in the
// file body, then (for the title only) a title derived from the slug.
package metadata

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/curriculumgen/internal/foundation/normalization"
	"git.home.luguber.info/inful/curriculumgen/internal/frontmatter"
)

// Source records which tier of the fallback chain produced the title.
type Source string

const (
	SourceFrontMatter Source = "frontmatter"
	SourceExport      Source = "export"
	SourceSlug        Source = "slug"
)

// Metadata is the per-file display metadata.
type Metadata struct {
	Title       string
	Description string
	// Redirect marks an index file that only forwards to another page.
	Redirect    bool
	TitleSource Source
}

// Front-matter keys.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyRedirect    = "redirect"
)

// Extract resolves metadata for one file's raw text. slug is the file name
// without extension and feeds the title fallback.
func Extract(raw []byte, slug string) Metadata {
	var md Metadata
	body := raw

	if fm, rest, had, err := frontmatter.Split(raw); err == nil && had {
		body = rest
		if fields, err := frontmatter.ParseYAML(fm); err == nil {
			md.Title = scalarString(fields[KeyTitle])
			md.Description = scalarString(fields[KeyDescription])
			md.Redirect = truthy(fields[KeyRedirect])
			if md.Title != "" {
				md.TitleSource = SourceFrontMatter
			}
		}
	}

	if md.Title == "" || md.Description == "" {
		if fields, ok := ExportedObject(string(body)); ok {
			if md.Title == "" {
				if md.Title = scalarString(fields[KeyTitle]); md.Title != "" {
					md.TitleSource = SourceExport
				}
			}
			if md.Description == "" {
				md.Description = scalarString(fields[KeyDescription])
			}
		}
	}

	if md.Title == "" {
		md.Title = TitleFromSlug(slug)
		md.TitleSource = SourceSlug
	}
	return md
}

// scalarString renders a decoded scalar as trimmed text. Non-scalar values
// (maps, lists) count as absent.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

// truthyStrings holds the accepted string spellings of a set redirect flag.
var truthyStrings = normalization.NewNormalizer(map[string]bool{
	"true": true,
	"yes":  true,
	"on":   true,
	"1":    true,
}, false)

// truthy interprets YAML booleans plus the common string and numeric spellings.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t == 1
	case string:
		return truthyStrings.Normalize(t)
	}
	return false
}
