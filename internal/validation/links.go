package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/curriculumgen/internal/content"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/util/sets"
)

// Link is one internal cross-reference found in a content file.
type Link struct {
	File   string // Rel path of the file containing the link
	Target string // identity the link points at, without fragment or trailing punctuation
	Raw    string // link text as written
	Line   int    // 1-based
}

// LinkChecker extracts internal links by prefix and checks them against the
// represented identities.
type LinkChecker struct {
	prefix    string
	aggregate bool
	pattern   *regexp.Regexp
}

// NewLinkChecker creates a checker for links starting with prefix
// (e.g. "/curriculum/"). With aggregate set, Check reports every broken link;
// otherwise it stops at the first one.
func NewLinkChecker(prefix string, aggregate bool) *LinkChecker {
	// Path runs until whitespace, a quote, a closing bracket, a query or the end
	// of a markdown/JSX link. The fragment is captured separately and dropped.
	pattern := regexp.MustCompile(regexp.QuoteMeta(prefix) + `([^\s"'` + "`" + `()<>\[\]{}#?]+)(#[^\s"'` + "`" + `()<>\[\]{}]*)?`)
	return &LinkChecker{prefix: prefix, aggregate: aggregate, pattern: pattern}
}

// Extract returns the internal links of one document in order of appearance.
// Matches embedded in a longer URL (https://host/curriculum/...) are ignored.
func (c *LinkChecker) Extract(doc content.Document) []Link {
	var links []Link
	for _, m := range c.pattern.FindAllSubmatchIndex(doc.Raw, -1) {
		if m[0] > 0 && isURLChar(doc.Raw[m[0]-1]) {
			continue
		}
		target := strings.TrimRight(string(doc.Raw[m[2]:m[3]]), "/.,;:!")
		if target == "" {
			continue
		}
		links = append(links, Link{
			File:   doc.Rel,
			Target: target,
			Raw:    string(doc.Raw[m[0]:m[1]]),
			Line:   bytes.Count(doc.Raw[:m[0]], []byte("\n")) + 1,
		})
	}
	return links
}

// Check validates every internal link in docs (in the given order) against represented.
func (c *LinkChecker) Check(docs []content.Document, represented sets.Set[string]) error {
	var broken []Link
	checked := 0
	for _, doc := range docs {
		for _, link := range c.Extract(doc) {
			checked++
			if represented.Has(link.Target) {
				continue
			}
			if !c.aggregate {
				return brokenLinkError([]Link{link})
			}
			slog.Debug("Broken internal link", logfields.File(link.File), logfields.Link(link.Target))
			broken = append(broken, link)
		}
	}
	if len(broken) > 0 {
		return brokenLinkError(broken)
	}
	slog.Debug("Link check passed", slog.Int("links", checked))
	return nil
}

func brokenLinkError(broken []Link) error {
	first := broken[0]
	if len(broken) == 1 {
		msg := fmt.Sprintf("broken internal link in %s (line %d): %s", first.File, first.Line, first.Raw)
		return ferrors.BrokenLinkError(msg).
			WithContext("file", first.File).
			WithContext("target", first.Target).
			WithContext("line", first.Line).
			Build()
	}
	lines := make([]string, len(broken))
	for i, l := range broken {
		lines[i] = fmt.Sprintf("%s:%d -> %s", l.File, l.Line, l.Target)
	}
	msg := fmt.Sprintf("%d broken internal links: %s", len(broken), strings.Join(lines, "; "))
	return ferrors.BrokenLinkError(msg).
		WithContext("file", first.File).
		WithContext("target", first.Target).
		WithContext("broken", lines).
		Build()
}

func isURLChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("._~-/:%", c) >= 0
}
