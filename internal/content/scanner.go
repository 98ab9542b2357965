// Package content enumerates lesson content files below a base directory.
package content

import (
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/util/sets"
)

// File is one discovered content file.
type File struct {
	Path string // Filesystem path (base directory joined with Rel)
	Rel  string // Slash-separated path relative to the base directory, with extension
	Slug string // Rel without the extension; the file's identity
	Name string // File name without extension
}

// Dir returns the slash-separated directory part of Rel ("" at the base).
func (f File) Dir() string {
	if d := path.Dir(f.Rel); d != "." {
		return d
	}
	return ""
}

// ScannerOptions configures a Scanner.
type ScannerOptions struct {
	Extension    string   // e.g. ".mdx"
	ReservedDirs []string // top-level directories skipped entirely
	MaxDepth     int      // deepest directory level descended into; 0 means unlimited
}

// Scanner walks a content tree without recursion.
type Scanner struct {
	fs       afero.Fs
	ext      string
	reserved sets.Set[string]
	maxDepth int
}

// NewScanner creates a scanner reading from fsys.
func NewScanner(fsys afero.Fs, opts ScannerOptions) *Scanner {
	return &Scanner{
		fs:       fsys,
		ext:      opts.Extension,
		reserved: sets.New(opts.ReservedDirs...),
		maxDepth: opts.MaxDepth,
	}
}

type pending struct {
	dir   string // filesystem path
	rel   string // slash path relative to base
	depth int
}

// Scan returns every content file below base, sorted by Slug. Hidden entries,
// reserved top-level directories and symlinked directories are skipped.
func (s *Scanner) Scan(base string) ([]File, error) {
	info, err := s.fs.Stat(base)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryScan, "content directory is not readable").
			Fatal().WithContext("path", base).Build()
	}
	if !info.IsDir() {
		return nil, ferrors.ScanError("content path is not a directory").WithContext("path", base).Build()
	}

	var files []File
	stack := []pending{{dir: base}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(s.fs, cur.dir)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryScan, "failed to read content directory").
				Fatal().WithContext("path", cur.dir).Build()
		}

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			full := filepath.Join(cur.dir, name)
			rel := name
			if cur.rel != "" {
				rel = cur.rel + "/" + name
			}

			isDir, ok := s.resolveKind(entry, full)
			if !ok {
				continue
			}

			if isDir {
				if cur.depth == 0 && s.reserved.Has(name) {
					slog.Debug("Skipping reserved directory", logfields.Path(rel))
					continue
				}
				if s.maxDepth > 0 && cur.depth+1 > s.maxDepth {
					return nil, ferrors.ScanError("content tree exceeds maximum depth").
						WithContext("path", rel).
						WithContext("max_depth", s.maxDepth).
						Build()
				}
				stack = append(stack, pending{dir: full, rel: rel, depth: cur.depth + 1})
				continue
			}

			if filepath.Ext(name) != s.ext {
				continue
			}
			files = append(files, File{
				Path: full,
				Rel:  rel,
				Slug: strings.TrimSuffix(rel, s.ext),
				Name: strings.TrimSuffix(name, s.ext),
			})
		}
	}

	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Slug, b.Slug) })
	slog.Debug("Content scan complete", logfields.Path(base), logfields.Count(len(files)))
	return files, nil
}

// resolveKind reports whether entry is a directory to descend into. Symlinks
// to directories are never followed; symlinks to files count as files.
func (s *Scanner) resolveKind(entry fs.FileInfo, full string) (isDir bool, ok bool) {
	if entry.Mode()&fs.ModeSymlink == 0 {
		return entry.IsDir(), entry.IsDir() || entry.Mode().IsRegular()
	}
	target, err := s.fs.Stat(full)
	if err != nil {
		slog.Debug("Skipping dangling symlink", logfields.Path(full))
		return false, false
	}
	if target.IsDir() {
		slog.Debug("Not following symlinked directory", logfields.Path(full))
		return false, false
	}
	return false, target.Mode().IsRegular()
}

// Slugs returns the identity set of files.
func Slugs(files []File) sets.Set[string] {
	out := make(sets.Set[string], len(files))
	for _, f := range files {
		out.Add(f.Slug)
	}
	return out
}
