package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Computations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cistats_computations_total", Help: "Interval computations by algorithm and result",
	}, []string{"algo", "result"})
	RequestLatency = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "cistats_request_seconds", Help: "API request latency",
	})
	IngestedSamples = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cistats_ingested_samples_total", Help: "Samples folded in from ingest files",
	})
	IngestFiles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cistats_ingest_files_total", Help: "Ingest files by result",
	}, []string{"result"})
)

func MustRegister() {
	prometheus.MustRegister(Computations, RequestLatency, IngestedSamples, IngestFiles)
}
