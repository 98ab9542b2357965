package commands

import (
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/curriculumgen/internal/curriculum"
	"git.home.luguber.info/inful/curriculumgen/internal/navigation"
	"git.home.luguber.info/inful/curriculumgen/internal/pipeline"
)

// QueryResult is the JSON printed by query.
type QueryResult struct {
	Segments    []string                `json:"segments"`
	Normalized  []string                `json:"normalized"`
	Topic       *curriculum.Topic       `json:"topic"`
	Breadcrumbs []navigation.Breadcrumb `json:"breadcrumbs"`
	Prev        *navigation.TopicRef    `json:"prev"`
	Next        *navigation.TopicRef    `json:"next"`
}

// QueryCmd implements the 'query' command.
type QueryCmd struct {
	ContentFlags `embed:""`
	Path         string `arg:"" help:"Curriculum path, e.g. T1_Foundational/F1_Intro or /curriculum/T1_Foundational"`
	Artifact     string `name:"artifact" help:"Read the tree from a JSON artifact instead of building it from content"`
}

func (q *QueryCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.LoadConfig(q.ContentFlags)
	if err != nil {
		return err
	}

	var tree curriculum.Tree
	if q.Artifact != "" {
		if tree, err = navigation.Load(global.Fs, q.Artifact); err != nil {
			return err
		}
	} else {
		res, err := pipeline.Run(global.ctx(), cfg, pipeline.Options{Fs: global.Fs, DryRun: true})
		if err != nil {
			return err
		}
		tree = res.Tree
	}

	nav := navigation.New(tree, pipeline.NavigatorOptions(cfg))
	segments := SplitPath(q.Path, cfg.Navigation.RootPath)
	out := QueryResult{
		Segments:    segments,
		Normalized:  nav.NormalizeSlug(segments),
		Breadcrumbs: nav.Breadcrumbs(segments),
	}
	if out.Normalized == nil {
		out.Normalized = []string{}
	}
	if topic, ok := nav.FindTopicBySlug(segments); ok {
		out.Topic = &topic
	}
	adj := nav.PrevNext(segments)
	out.Prev, out.Next = adj.Prev, adj.Next

	enc := json.NewEncoder(global.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// SplitPath turns "/curriculum/T1/S1/topic#frag" into ["T1", "S1", "topic"].
// The root path prefix, fragment and empty segments are dropped.
func SplitPath(raw, rootPath string) []string {
	p := raw
	if i := strings.IndexAny(p, "#?"); i >= 0 {
		p = p[:i]
	}
	root := strings.TrimSuffix(rootPath, "/")
	if root != "" && (p == root || strings.HasPrefix(p, root+"/")) {
		p = strings.TrimPrefix(p, root)
	}
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
