package metrics

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workspacesDesc = prometheus.NewDesc(
		"kwbrand_workspaces_active",
		"Number of live browser workspaces",
		nil,
		nil,
	)

	operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kwbrand_operations_total",
		Help: "Engine operations by name and outcome",
	}, []string{"operation", "outcome"})

	rowsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kwbrand_rows_processed_total",
		Help: "Rows produced by each operation",
	}, []string{"operation"})

	mergeFiles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kwbrand_merge_files_total",
		Help: "Files seen by batch merges by outcome",
	}, []string{"outcome"})

	workspacesEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kwbrand_workspaces_evicted_total",
		Help: "Idle workspaces removed by the reaper",
	})
)

// Operation names.
const (
	OpRank         = "rank"
	OpMatch        = "match"
	OpDedup        = "dedup"
	OpMergeFiles   = "merge_files"
	OpMergeArchive = "merge_archives"
)

// Outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// WorkspaceCounter reports the number of live workspaces.
type WorkspaceCounter interface {
	Len() int
}

// WorkspaceCollector is a custom Prometheus collector that reads the
// workspace count from the store on each scrape.
type WorkspaceCollector struct {
	store WorkspaceCounter
}

// Describe sends the metric descriptor to the channel.
func (c *WorkspaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- workspacesDesc
}

// Collect emits the current workspace count.
func (c *WorkspaceCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(workspacesDesc, prometheus.GaugeValue, float64(c.store.Len()))
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup; later calls are no-ops.
func Init(store WorkspaceCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			&WorkspaceCollector{store: store},
			operations,
			rowsProcessed,
			mergeFiles,
			workspacesEvicted,
		)
	})
}

// RecordOperation counts one engine operation. rows is ignored on error.
func RecordOperation(op string, rows int, err error) {
	if err != nil {
		operations.WithLabelValues(op, OutcomeError).Inc()
		slog.Warn("operation failed", "operation", op, "error", err)
		return
	}
	operations.WithLabelValues(op, OutcomeOK).Inc()
	rowsProcessed.WithLabelValues(op).Add(float64(rows))
}

// RecordMergeFiles counts merged and failed files of one batch.
func RecordMergeFiles(merged, failed int) {
	mergeFiles.WithLabelValues(OutcomeOK).Add(float64(merged))
	mergeFiles.WithLabelValues(OutcomeError).Add(float64(failed))
}

// RecordEvictions counts workspaces removed by the reaper.
func RecordEvictions(n int) {
	workspacesEvicted.Add(float64(n))
}
