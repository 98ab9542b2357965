package content

import (
	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
)

// Document is a discovered file together with its raw text.
type Document struct {
	File
	Raw []byte
}

// ReadAll loads every file sequentially, in the given order.
func ReadAll(fsys afero.Fs, files []File) ([]Document, error) {
	docs := make([]Document, 0, len(files))
	for _, f := range files {
		raw, err := afero.ReadFile(fsys, f.Path)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryScan, "failed to read content file").
				Fatal().WithContext("path", f.Rel).Build()
		}
		docs = append(docs, Document{File: f, Raw: raw})
	}
	return docs, nil
}
