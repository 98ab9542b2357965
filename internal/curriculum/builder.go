package curriculum

import (
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/curriculumgen/internal/content"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/metadata"
	"git.home.luguber.info/inful/curriculumgen/internal/util/sets"
)

var tierPrefix = regexp.MustCompile(`^(T\d)_`)

// Tier returns the leading T<digit> token of a module directory name, or the
// whole name when it carries no tier prefix.
func Tier(dirName string) string {
	if m := tierPrefix.FindStringSubmatch(dirName); m != nil {
		return m[1]
	}
	return dirName
}

// ModuleTitle derives a module's display title from its directory name with
// the tier prefix removed.
func ModuleTitle(dirName string) string {
	return metadata.TitleFromSlug(tierPrefix.ReplaceAllString(dirName, ""))
}

// MetadataFunc resolves metadata for a content file, given its filesystem path
// and the file name without extension.
type MetadataFunc func(path, name string) metadata.Metadata

// FileMetadata returns a MetadataFunc that reads files from fsys. Unreadable
// files resolve to the slug-derived fallback.
func FileMetadata(fsys afero.Fs) MetadataFunc {
	return func(path, name string) metadata.Metadata {
		raw, err := afero.ReadFile(fsys, path)
		if err != nil {
			slog.Warn("Metadata read failed; using slug title", logfields.Path(path), logfields.Error(err))
			raw = nil
		}
		return metadata.Extract(raw, name)
	}
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Extension    string
	IndexName    string
	ReservedDirs []string
}

// Builder groups scanned content files by directory into the Module → Section → Topic tree.
type Builder struct {
	fs       afero.Fs
	ext      string
	index    string
	reserved sets.Set[string]
	meta     MetadataFunc
}

// NewBuilder creates a builder. meta may be nil, in which case files are read from fsys.
func NewBuilder(fsys afero.Fs, opts BuilderOptions, meta MetadataFunc) *Builder {
	if meta == nil {
		meta = FileMetadata(fsys)
	}
	return &Builder{
		fs:       fsys,
		ext:      opts.Extension,
		index:    opts.IndexName,
		reserved: sets.New(opts.ReservedDirs...),
		meta:     meta,
	}
}

// Result is the built tree plus every identity the builder accounted for,
// including redirect indexes that produced no topic.
type Result struct {
	Tree        Tree
	Represented sets.Set[string]
	// Redirects lists the identities skipped as redirect-only indexes.
	Redirects []string
}

// Build groups files, as returned by content.Scanner for base, into the
// navigation tree. Module directories are listed from base so that modules
// without sections still appear; topics come only from files. Files that are
// not exactly two directories below base are left out of the tree.
func (b *Builder) Build(base string, files []content.File) (*Result, error) {
	res := &Result{Represented: sets.New[string]()}

	moduleDirs, err := b.subdirs(base)
	if err != nil {
		return nil, err
	}
	bySection := b.groupBySection(files)

	for _, modSlug := range moduleDirs {
		if b.reserved.Has(modSlug) {
			continue
		}
		mod := Module{
			Title:    ModuleTitle(modSlug),
			Slug:     modSlug,
			Tier:     Tier(modSlug),
			Sections: []Section{},
		}

		for _, secSlug := range sortedKeys(bySection[modSlug]) {
			if sec := b.buildSection(res, modSlug, secSlug, bySection[modSlug][secSlug]); sec != nil {
				mod.Sections = append(mod.Sections, *sec)
			}
		}

		res.Tree = append(res.Tree, mod)
		slog.Debug("Built module", logfields.Module(modSlug), slog.Int("sections", len(mod.Sections)))
	}
	if res.Tree == nil {
		res.Tree = Tree{}
	}
	return res, nil
}

// groupBySection indexes section-level files by module and section slug.
func (b *Builder) groupBySection(files []content.File) map[string]map[string][]content.File {
	out := make(map[string]map[string][]content.File)
	for _, f := range files {
		if path.Ext(f.Rel) != b.ext {
			continue
		}
		parts := strings.Split(f.Dir(), "/")
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		if out[parts[0]] == nil {
			out[parts[0]] = make(map[string][]content.File)
		}
		out[parts[0]][parts[1]] = append(out[parts[0]][parts[1]], f)
	}
	return out
}

// buildSection returns nil when the section has no retained topics.
func (b *Builder) buildSection(res *Result, modSlug, secSlug string, files []content.File) *Section {
	files = slices.Clone(files)
	slices.SortFunc(files, func(x, y content.File) int {
		return strings.Compare(path.Base(x.Rel), path.Base(y.Rel))
	})
	idx := slices.IndexFunc(files, func(f content.File) bool { return f.Name == b.index })

	sec := &Section{
		Title:  metadata.TitleFromSlug(secSlug),
		Slug:   secSlug,
		Topics: []Topic{},
	}

	if idx >= 0 {
		index := files[idx]
		files = slices.Delete(files, idx, idx+1)
		md := b.meta(index.Path, index.Name)
		if md.Redirect && len(files) == 0 {
			res.Represented.Add(index.Slug)
			res.Redirects = append(res.Redirects, index.Slug)
			slog.Debug("Skipping redirect-only index", logfields.Module(modSlug), logfields.Section(secSlug))
			return nil
		}
		sec.Title = md.Title
		sec.Topics = append(sec.Topics, Topic{Title: md.Title, Slug: index.Name, Description: md.Description})
		res.Represented.Add(index.Slug)
	}

	for _, f := range files {
		md := b.meta(f.Path, f.Name)
		sec.Topics = append(sec.Topics, Topic{Title: md.Title, Slug: f.Name, Description: md.Description})
		res.Represented.Add(f.Slug)
	}

	if len(sec.Topics) == 0 {
		return nil
	}
	return sec
}

// subdirs lists visible subdirectory names of dir in lexicographic order.
func (b *Builder) subdirs(dir string) ([]string, error) {
	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryScan, "failed to read content directory").
			Fatal().WithContext("path", dir).Build()
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, e.Name())
		}
	}
	slices.Sort(out)
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
