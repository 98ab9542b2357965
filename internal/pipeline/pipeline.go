package pipeline

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/curriculumgen/internal/config"
	"git.home.luguber.info/inful/curriculumgen/internal/content"
	"git.home.luguber.info/inful/curriculumgen/internal/curriculum"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/generate"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/metadata"
	"git.home.luguber.info/inful/curriculumgen/internal/metrics"
	"git.home.luguber.info/inful/curriculumgen/internal/navigation"
	"git.home.luguber.info/inful/curriculumgen/internal/observability"
	"git.home.luguber.info/inful/curriculumgen/internal/util/sets"
	"git.home.luguber.info/inful/curriculumgen/internal/validation"
)

// Stage names a pipeline step. Used as the metrics "stage" label.
type Stage string

const (
	StageScan         Stage = "scan"
	StageRead         Stage = "read"
	StageBuild        Stage = "build"
	StageCompleteness Stage = "completeness"
	StageLinks        Stage = "links"
	StageRender       Stage = "render"
	StageWrite        Stage = "write"
)

// Options controls a single run.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Recorder defaults to metrics.NoopRecorder.
	Recorder metrics.Recorder
	// DryRun runs every stage except write.
	DryRun bool
}

// Result is everything a run produced, including partial state when it failed.
type Result struct {
	RunID       string
	Files       []content.File
	Discovered  sets.Set[string]
	Tree        curriculum.Tree
	Represented sets.Set[string]
	Redirects   []string
	Artifact    []byte
	Write       *generate.WriteResult // nil for dry runs and failed runs
	Outcome     metrics.RunOutcome
	Stages      map[Stage]time.Duration
	Duration    time.Duration
}

type runner struct {
	cfg  *config.Config
	fs   afero.Fs
	rec  metrics.Recorder
	opts Options
	docs []content.Document
}

// Run executes the full pipeline for cfg.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("config required").Build()
	}
	r := &runner{cfg: cfg, fs: opts.Fs, rec: opts.Recorder, opts: opts}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.rec == nil {
		r.rec = metrics.NoopRecorder{}
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Stages: make(map[Stage]time.Duration)}
	ctx = observability.WithRunID(ctx, res.RunID)
	observability.DebugContext(ctx, "Starting curriculum run",
		logfields.Path(cfg.Content.Dir), slog.Bool("dry_run", opts.DryRun))

	err := r.execute(ctx, res)
	res.Duration = time.Since(start)
	r.rec.ObserveRunDuration(res.Duration)

	switch {
	case err == nil:
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		res.Outcome = metrics.OutcomeCanceled
	default:
		res.Outcome = metrics.OutcomeFailed
	}
	r.rec.IncRunOutcome(res.Outcome)

	if err != nil {
		observability.ErrorContext(ctx, "Curriculum run failed",
			slog.String("category", string(ferrors.GetCategory(err))),
			logfields.Duration(res.Duration),
			logfields.Error(err))
		return res, err
	}
	observability.InfoContext(ctx, "Curriculum run complete",
		slog.String("outcome", string(res.Outcome)),
		slog.Int("modules", len(res.Tree)),
		slog.Int("topics", res.Tree.TopicCount()),
		logfields.Duration(res.Duration))
	return res, nil
}

func (r *runner) execute(ctx context.Context, res *Result) error {
	steps := []struct {
		name Stage
		fn   func(context.Context, *Result) error
	}{
		{StageScan, r.scan},
		{StageRead, r.read},
		{StageBuild, r.build},
		{StageCompleteness, r.completeness},
		{StageLinks, r.links},
		{StageRender, r.render},
		{StageWrite, r.write},
	}
	for _, step := range steps {
		if err := r.stage(ctx, res, step.name, step.fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) stage(ctx context.Context, res *Result, name Stage, fn func(context.Context, *Result) error) error {
	if err := ctx.Err(); err != nil {
		r.rec.IncStageResult(string(name), metrics.ResultCanceled)
		return err
	}
	ctx = observability.WithStage(ctx, string(name))
	start := time.Now()
	err := fn(ctx, res)
	d := time.Since(start)
	res.Stages[name] = d
	r.rec.ObserveStageDuration(string(name), d)
	if err != nil {
		r.rec.IncStageResult(string(name), metrics.ResultFatal)
		return err
	}
	r.rec.IncStageResult(string(name), metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage complete", logfields.Duration(d))
	return nil
}

func (r *runner) scan(ctx context.Context, res *Result) error {
	scanner := content.NewScanner(r.fs, content.ScannerOptions{
		Extension:    r.cfg.Content.Extension,
		ReservedDirs: r.cfg.Content.ReservedDirs,
		MaxDepth:     r.cfg.Content.MaxDepth,
	})
	files, err := scanner.Scan(r.cfg.Content.Dir)
	if err != nil {
		return err
	}
	res.Files = files
	res.Discovered = content.Slugs(files)
	r.rec.SetFilesDiscovered(len(files))
	observability.DebugContext(ctx, "Discovered content files", logfields.Count(len(files)))
	return nil
}

func (r *runner) read(_ context.Context, res *Result) error {
	docs, err := content.ReadAll(r.fs, res.Files)
	if err != nil {
		return err
	}
	r.docs = docs
	return nil
}

func (r *runner) build(ctx context.Context, res *Result) error {
	builder := curriculum.NewBuilder(r.fs, curriculum.BuilderOptions{
		Extension:    r.cfg.Content.Extension,
		IndexName:    r.cfg.Content.IndexName,
		ReservedDirs: r.cfg.Content.ReservedDirs,
	}, cachedMetadata(r.docs, curriculum.FileMetadata(r.fs)))
	built, err := builder.Build(r.cfg.Content.Dir, res.Files)
	if err != nil {
		return err
	}
	res.Tree = built.Tree
	res.Represented = built.Represented
	res.Redirects = built.Redirects
	r.rec.SetTopicsEmitted(built.Tree.TopicCount())
	for _, id := range built.Redirects {
		observability.DebugContext(ctx, "Redirect index hidden from navigation", logfields.Topic(id))
	}
	return nil
}

func (r *runner) completeness(_ context.Context, res *Result) error {
	return validation.CheckCompleteness(res.Discovered, res.Represented)
}

func (r *runner) links(_ context.Context, res *Result) error {
	checker := validation.NewLinkChecker(r.cfg.Links.Prefix, r.cfg.Links.Aggregate)
	err := checker.Check(r.docs, res.Represented)
	if ferrors.HasCategory(err, ferrors.CategoryBrokenLink) {
		if broken, ok := ferrors.ContextStrings(err, "broken"); ok {
			r.rec.AddBrokenLinks(len(broken))
		} else {
			r.rec.AddBrokenLinks(1)
		}
	}
	return err
}

func (r *runner) render(_ context.Context, res *Result) error {
	out, err := generate.Render(res.Tree, RenderOptions(r.cfg))
	if err != nil {
		return err
	}
	res.Artifact = out
	return nil
}

func (r *runner) write(ctx context.Context, res *Result) error {
	if r.opts.DryRun {
		res.Outcome = metrics.OutcomeDryRun
		observability.InfoContext(ctx, "Dry run; artifact not written", logfields.Path(r.cfg.Output.Path))
		return nil
	}
	wr, err := generate.WriteAtomic(r.fs, r.cfg.Output.Path, res.Artifact)
	if err != nil {
		return err
	}
	res.Write = wr
	res.Outcome = metrics.OutcomeUnchanged
	if wr.Written {
		res.Outcome = metrics.OutcomeWritten
	}
	return nil
}

// cachedMetadata resolves metadata from the documents already read, so each
// file is read once per run.
func cachedMetadata(docs []content.Document, fallback curriculum.MetadataFunc) curriculum.MetadataFunc {
	byPath := make(map[string][]byte, len(docs))
	for _, d := range docs {
		byPath[d.Path] = d.Raw
	}
	return func(path, name string) metadata.Metadata {
		if raw, ok := byPath[path]; ok {
			return metadata.Extract(raw, name)
		}
		return fallback(path, name)
	}
}

// RenderOptions derives artifact rendering options from cfg.
func RenderOptions(cfg *config.Config) generate.Options {
	return generate.Options{
		Format:    cfg.Output.Format,
		Symbol:    cfg.Output.Symbol,
		RootLabel: cfg.Navigation.RootLabel,
		RootPath:  cfg.Navigation.RootPath,
		IndexName: cfg.Content.IndexName,
	}
}

// NavigatorOptions derives navigation options from cfg.
func NavigatorOptions(cfg *config.Config) navigation.Options {
	return navigation.Options{
		RootLabel: cfg.Navigation.RootLabel,
		RootPath:  cfg.Navigation.RootPath,
		IndexName: cfg.Content.IndexName,
	}
}
