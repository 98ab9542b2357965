package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/metrics"
	"git.home.luguber.info/inful/curriculumgen/internal/pipeline"
	"git.home.luguber.info/inful/curriculumgen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ContentFlags `embed:""`
	Debounce     time.Duration `name:"debounce" help:"Quiet period before regenerating" default:"300ms"`
	MetricsAddr  string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9464"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.LoadConfig(w.ContentFlags)
	if err != nil {
		return err
	}
	ctx := global.ctx()
	rec, reg := newRecorder(w.MetricsAddr != "" || cfg.Metrics.Textfile != "")

	if w.MetricsAddr != "" {
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Serving metrics", slog.String("addr", w.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	build := func(ctx context.Context) error {
		_, err := pipeline.Run(ctx, cfg, pipeline.Options{Fs: global.Fs, Recorder: rec})
		flushTextfile(reg, cfg.Metrics.Textfile)
		return err
	}
	return watch.New(cfg.Content.Dir, build, watch.WithDebounce(w.Debounce)).Run(ctx)
}
