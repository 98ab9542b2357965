package metadata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var slugSeparators = strings.NewReplacer("-", " ", "_", " ")

// TitleFromSlug derives a display title from a slug: separators become spaces
// and every word gets an upper-case first letter. The rest of each word is kept
// as written, so acronyms survive ("intro_to_TCP" → "Intro To TCP").
func TitleFromSlug(slug string) string {
	words := strings.Fields(slugSeparators.Replace(slug))
	if len(words) == 0 {
		return ""
	}
	// Casers carry state and are not safe for concurrent use.
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(words, " "))
}
