// Package metrics provides run metrics for the curriculum pipeline.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and costs nothing; PrometheusRecorder registers its collectors
// on a caller-supplied registry.
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	res, err := pipeline.Run(ctx, cfg, pipeline.Options{Recorder: rec})
//	_ = metrics.WriteTextfile(reg, "/var/lib/node_exporter/curriculumgen.prom")
//
// One-shot runs persist the registry in the node-exporter textfile format;
// long-running watch sessions can serve it over HTTP with Handler.
package metrics
