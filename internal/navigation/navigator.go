// Package navigation answers lookups against a built curriculum tree: slug
// normalization, topic lookup, breadcrumbs and previous/next topics.
//
// A Navigator is constructed once from an immutable tree and passed to whoever
// needs it. All methods are read-only and safe for concurrent use. Unresolved
// lookups return empty results, never errors.
package navigation

import (
	"git.home.luguber.info/inful/curriculumgen/internal/curriculum"
)

// Options configures breadcrumb roots and the preferred topic of a section.
type Options struct {
	RootLabel string
	RootPath  string
	IndexName string
}

// Breadcrumb is one entry of a breadcrumb trail.
type Breadcrumb struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// TopicRef locates a topic in the flattened order.
type TopicRef struct {
	Module  string `json:"moduleSlug"`
	Section string `json:"sectionSlug"`
	Topic   string `json:"topicSlug"`
	Title   string `json:"title"`
	Path    string `json:"path"`
}

// Adjacent holds the neighbours of a topic in the flattened order.
type Adjacent struct {
	Prev *TopicRef `json:"prev,omitempty"`
	Next *TopicRef `json:"next,omitempty"`
}

// Navigator serves lookups over one tree.
type Navigator struct {
	tree curriculum.Tree
	opts Options
	flat []TopicRef
	pos  map[string]int
}

// New builds a navigator over a private copy of tree and precomputes the
// flattened topic order (module, then section, then topic order).
func New(tree curriculum.Tree, opts Options) *Navigator {
	n := &Navigator{
		tree: tree.Clone(),
		opts: opts,
		pos:  make(map[string]int),
	}
	for _, m := range n.tree {
		for _, s := range m.Sections {
			for _, t := range s.Topics {
				id := curriculum.Identity(m.Slug, s.Slug, t.Slug)
				if _, dup := n.pos[id]; !dup {
					n.pos[id] = len(n.flat)
				}
				n.flat = append(n.flat, TopicRef{
					Module:  m.Slug,
					Section: s.Slug,
					Topic:   t.Slug,
					Title:   t.Title,
					Path:    n.Path(m.Slug, s.Slug, t.Slug),
				})
			}
		}
	}
	return n
}

// NormalizeSlug resolves a partial path to a full module/section/topic triple.
//
//   - no segments: unresolved (nil)
//   - three or more: the first three, unchanged
//   - module only: the module's first section
//   - module and section: that section
//
// Within the chosen section the index topic is preferred, else the first
// topic. A missing module or section, or one without topics, is unresolved.
func (n *Navigator) NormalizeSlug(segments []string) []string {
	switch {
	case len(segments) == 0:
		return nil
	case len(segments) >= 3:
		return []string{segments[0], segments[1], segments[2]}
	}

	mod, ok := n.tree.Module(segments[0])
	if !ok || len(mod.Sections) == 0 {
		return nil
	}
	sec := &mod.Sections[0]
	if len(segments) == 2 {
		if sec, ok = mod.Section(segments[1]); !ok {
			return nil
		}
	}
	if len(sec.Topics) == 0 {
		return nil
	}
	topic := sec.Topics[0].Slug
	if _, ok := sec.Topic(n.opts.IndexName); ok {
		topic = n.opts.IndexName
	}
	return []string{mod.Slug, sec.Slug, topic}
}

// FindTopicBySlug normalizes segments and looks the topic up level by level.
func (n *Navigator) FindTopicBySlug(segments []string) (curriculum.Topic, bool) {
	norm := n.NormalizeSlug(segments)
	if len(norm) != 3 {
		return curriculum.Topic{}, false
	}
	mod, ok := n.tree.Module(norm[0])
	if !ok {
		return curriculum.Topic{}, false
	}
	sec, ok := mod.Section(norm[1])
	if !ok {
		return curriculum.Topic{}, false
	}
	topic, ok := sec.Topic(norm[2])
	if !ok {
		return curriculum.Topic{}, false
	}
	return *topic, true
}

// Breadcrumbs returns the root entry followed by module, section and topic
// entries as far as each level resolves. Each path extends the previous one.
func (n *Navigator) Breadcrumbs(segments []string) []Breadcrumb {
	crumbs := []Breadcrumb{{Title: n.opts.RootLabel, Path: n.opts.RootPath}}
	norm := n.NormalizeSlug(segments)
	if len(norm) != 3 {
		return crumbs
	}

	mod, ok := n.tree.Module(norm[0])
	if !ok {
		return crumbs
	}
	crumbs = append(crumbs, Breadcrumb{Title: mod.Title, Path: n.Path(mod.Slug)})

	sec, ok := mod.Section(norm[1])
	if !ok {
		return crumbs
	}
	crumbs = append(crumbs, Breadcrumb{Title: sec.Title, Path: n.Path(mod.Slug, sec.Slug)})

	topic, ok := sec.Topic(norm[2])
	if !ok {
		return crumbs
	}
	return append(crumbs, Breadcrumb{Title: topic.Title, Path: n.Path(mod.Slug, sec.Slug, topic.Slug)})
}

// PrevNext returns the topics immediately before and after the normalized
// position. The first topic has no Prev and the last has no Next.
func (n *Navigator) PrevNext(segments []string) Adjacent {
	norm := n.NormalizeSlug(segments)
	if len(norm) != 3 {
		return Adjacent{}
	}
	idx, ok := n.pos[curriculum.Identity(norm...)]
	if !ok {
		return Adjacent{}
	}
	var adj Adjacent
	if idx > 0 {
		prev := n.flat[idx-1]
		adj.Prev = &prev
	}
	if idx < len(n.flat)-1 {
		next := n.flat[idx+1]
		adj.Next = &next
	}
	return adj
}

// Flatten returns the flattened topic order.
func (n *Navigator) Flatten() []TopicRef {
	return append([]TopicRef(nil), n.flat...)
}

// Path joins slugs under the root path, e.g. "/curriculum/T1_A/S1/index".
func (n *Navigator) Path(slugs ...string) string {
	p := n.opts.RootPath
	for _, s := range slugs {
		p += "/" + s
	}
	return p
}

// Tree returns a copy of the underlying tree.
func (n *Navigator) Tree() curriculum.Tree {
	return n.tree.Clone()
}
