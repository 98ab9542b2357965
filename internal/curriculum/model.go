// Package curriculum defines the Module → Section → Topic navigation model and
// the builder that derives it from a lesson content directory.
package curriculum

import "strings"

// Topic is one navigable lesson unit, backed by one content file.
type Topic struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Section groups the topics of one section directory.
type Section struct {
	Title  string  `json:"title"`
	Slug   string  `json:"slug"`
	Topics []Topic `json:"topics"`
}

// Module is one tier-labelled top-level directory.
type Module struct {
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Tier     string    `json:"tier"`
	Sections []Section `json:"sections"`
}

// Tree is the ordered root collection of modules. It is built once per run and
// treated as read-only afterwards.
type Tree []Module

// Module returns the module with the given slug.
func (t Tree) Module(slug string) (*Module, bool) {
	for i := range t {
		if t[i].Slug == slug {
			return &t[i], true
		}
	}
	return nil, false
}

// Section returns the section with the given slug.
func (m *Module) Section(slug string) (*Section, bool) {
	for i := range m.Sections {
		if m.Sections[i].Slug == slug {
			return &m.Sections[i], true
		}
	}
	return nil, false
}

// Topic returns the topic with the given slug.
func (s *Section) Topic(slug string) (*Topic, bool) {
	for i := range s.Topics {
		if s.Topics[i].Slug == slug {
			return &s.Topics[i], true
		}
	}
	return nil, false
}

// TopicCount returns the number of topics across all modules.
func (t Tree) TopicCount() int {
	n := 0
	for _, m := range t {
		for _, s := range m.Sections {
			n += len(s.Topics)
		}
	}
	return n
}

// Clone returns a deep copy so callers can hand out a tree without sharing backing arrays.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, m := range t {
		out[i] = m
		out[i].Sections = make([]Section, len(m.Sections))
		for j, s := range m.Sections {
			out[i].Sections[j] = s
			out[i].Sections[j].Topics = append([]Topic(nil), s.Topics...)
		}
	}
	return out
}

// Identity joins path segments into the slash-separated form used by the
// represented set and by internal links.
func Identity(segments ...string) string {
	return strings.Join(segments, "/")
}
