package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("scan", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncStageResult("scan", ResultSuccess)
	pr.IncRunOutcome(OutcomeWritten)
	pr.IncRunOutcome(OutcomeWritten)
	pr.SetFilesDiscovered(12)
	pr.SetTopicsEmitted(10)
	pr.AddBrokenLinks(2)
	pr.AddBrokenLinks(0)

	require.InDelta(t, 2, testutil.ToFloat64(pr.runOutcome.WithLabelValues("written")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.stageResults.WithLabelValues("scan", "success")), 0)
	require.InDelta(t, 12, testutil.ToFloat64(pr.filesDiscovered), 0)
	require.InDelta(t, 10, testutil.ToFloat64(pr.topicsEmitted), 0)
	require.InDelta(t, 2, testutil.ToFloat64(pr.brokenLinks), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveStageDuration("scan", time.Second)
		pr.IncRunOutcome(OutcomeFailed)
		pr.AddBrokenLinks(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetTopicsEmitted(3)

	path := filepath.Join(t.TempDir(), "curriculumgen.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "curriculumgen_topics_emitted 3")
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	err := WriteTextfile(prom.NewRegistry(), filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
}

func TestHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetFilesDiscovered(4)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "curriculumgen_files_discovered 4"))
}
