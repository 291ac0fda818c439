package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hris_bulk"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
)

// Recorder counts bulk dispatches and selection operations. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	bulkActions   *prometheus.CounterVec
	rowsAffected  *prometheus.CounterVec
	selectionOps  *prometheus.CounterVec
	exportedBytes prometheus.Counter
}

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		bulkActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Bulk actions dispatched, by entity, action and outcome",
		}, []string{"module", "entity", "action", "outcome"}),
		rowsAffected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_affected_total",
			Help:      "Rows changed by bulk actions",
		}, []string{"module", "entity", "action"}),
		selectionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_operations_total",
			Help:      "Selection state operations, by kind",
		}, []string{"op"}),
		exportedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_bytes_total",
			Help:      "Bytes of spreadsheet data served by exports",
		}),
	}
	reg.MustRegister(r.bulkActions, r.rowsAffected, r.selectionOps, r.exportedBytes)
	return r
}

func (r *Recorder) BulkAction(module, entity, action, outcome string) {
	if r == nil {
		return
	}
	r.bulkActions.WithLabelValues(module, entity, action, outcome).Inc()
}

func (r *Recorder) RowsAffected(module, entity, action string, n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.rowsAffected.WithLabelValues(module, entity, action).Add(float64(n))
}

func (r *Recorder) SelectionOp(op string) {
	if r == nil {
		return
	}
	r.selectionOps.WithLabelValues(op).Inc()
}

func (r *Recorder) Exported(size int) {
	if r == nil || size <= 0 {
		return
	}
	r.exportedBytes.Add(float64(size))
}
