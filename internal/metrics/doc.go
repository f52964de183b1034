// Package metrics records build and stage metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	p := pipeline.New(cfg)                                  // NoopRecorder
//	p := pipeline.New(cfg, pipeline.WithRecorder(recorder)) // Prometheus
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// Watch mode serves that registry over HTTP (HTTPHandler); one-shot builds can
// export it to a node-exporter textfile (WriteTextfile).
package metrics
