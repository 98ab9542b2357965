// Package generate serializes a validated curriculum tree into the generated
// artifact and writes it atomically.
package generate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"text/template"

	"git.home.luguber.info/inful/curriculumgen/internal/config"
	"git.home.luguber.info/inful/curriculumgen/internal/curriculum"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
)

//go:embed templates/curriculum.ts.tmpl
var templatesFS embed.FS

var tsTemplate = template.Must(template.New("curriculum.ts.tmpl").
	Funcs(template.FuncMap{"json": jsonString}).
	ParseFS(templatesFS, "templates/curriculum.ts.tmpl"))

// Options controls artifact rendering.
type Options struct {
	Format    config.Format
	Symbol    string // exported name of the tree in TypeScript output
	RootLabel string // first breadcrumb title
	RootPath  string // first breadcrumb path; topic paths extend it
	IndexName string // topic slug preferred when a path names only a module or section
}

// Render produces the artifact text. Identical trees and options always yield
// byte-identical output.
func Render(tree curriculum.Tree, opts Options) ([]byte, error) {
	if tree == nil {
		tree = curriculum.Tree{}
	}
	data, err := marshalTree(tree)
	if err != nil {
		return nil, ferrors.InternalError("failed to encode curriculum tree").WithCause(err).Build()
	}

	switch opts.Format {
	case config.FormatJSON:
		return append(data, '\n'), nil
	case config.FormatTypeScript, "":
		var buf bytes.Buffer
		err := tsTemplate.Execute(&buf, struct {
			Options
			Tree string
		}{Options: opts, Tree: string(data)})
		if err != nil {
			return nil, ferrors.InternalError("failed to render TypeScript artifact").WithCause(err).Build()
		}
		return buf.Bytes(), nil
	default:
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported output format %q", opts.Format)).Build()
	}
}

// marshalTree encodes with two-space indentation and without HTML escaping so
// titles like "Q&A" stay readable in the artifact.
func marshalTree(tree curriculum.Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
