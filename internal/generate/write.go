package generate

import (
	"log/slog"
	"path/filepath"

	"github.com/inful/mdfp"
	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
)

// WriteResult describes the outcome of WriteAtomic.
type WriteResult struct {
	Path        string
	Fingerprint string
	// Written is false when the file already held identical content.
	Written bool
}

// Fingerprint returns the content fingerprint used to detect unchanged artifacts.
func Fingerprint(data []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(data))
}

// WriteAtomic writes data to path via a temporary sibling file and a rename,
// so readers never observe a partially written artifact. If path already
// holds identical content it is left untouched.
func WriteAtomic(fsys afero.Fs, path string, data []byte) (*WriteResult, error) {
	res := &WriteResult{Path: path, Fingerprint: Fingerprint(data)}

	if existing, err := afero.ReadFile(fsys, path); err == nil && Fingerprint(existing) == res.Fingerprint {
		slog.Debug("Artifact unchanged; skipping write", logfields.Path(path))
		return res, nil
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, writeError(err, "failed to create output directory", path)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fsys, tmp, data, 0o644); err != nil {
		_ = fsys.Remove(tmp)
		return nil, writeError(err, "failed to write temporary artifact", path)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return nil, writeError(err, "failed to replace artifact", path)
	}
	res.Written = true
	slog.Info("Wrote artifact", logfields.Path(path), slog.Int("bytes", len(data)))
	return res, nil
}

func writeError(err error, msg, path string) error {
	return ferrors.FileSystemError(msg).WithCause(err).WithContext("path", path).Build()
}
