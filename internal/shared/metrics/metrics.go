package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	analysisSubmittedTotal atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	analysisRejectedTotal  atomic.Uint64

	modelCallDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncAnalysisSubmitted counts a submission that reached the pipeline.
func IncAnalysisSubmitted() {
	analysisSubmittedTotal.Add(1)
}

// IncAnalysisCompleted counts a persisted analysis.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed counts a submission that failed after validation.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncAnalysisRejected counts a submission that failed validation.
func IncAnalysisRejected() {
	analysisRejectedTotal.Add(1)
}

// ObserveModelCallMs records the latency of one model call in milliseconds.
func ObserveModelCallMs(value float64) {
	if value < 0 {
		value = 0
	}
	modelCallDuration.Observe(value)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Submitted uint64
	Completed uint64
	Failed    uint64
	Rejected  uint64
}

// Counters returns the current counter values.
func Counters() Snapshot {
	return Snapshot{
		Submitted: analysisSubmittedTotal.Load(),
		Completed: analysisCompletedTotal.Load(),
		Failed:    analysisFailedTotal.Load(),
		Rejected:  analysisRejectedTotal.Load(),
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	snap := Counters()
	writeCounter(&buf, "analysis_submitted_total", "Analyses submitted to the pipeline", snap.Submitted)
	writeCounter(&buf, "analysis_completed_total", "Analyses persisted", snap.Completed)
	writeCounter(&buf, "analysis_failed_total", "Analyses failed during model call or storage", snap.Failed)
	writeCounter(&buf, "analysis_rejected_total", "Analyses rejected by validation", snap.Rejected)
	writeHistogram(&buf, "model_call_duration_ms", "Generative model call latency in milliseconds", modelCallDuration.snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	bounds  []float64
	buckets []uint64
	sum     float64
	count   uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{
		bounds:  bounds,
		buckets: make([]uint64, len(bounds)),
	}
}

// Observe stores cumulative bucket counts directly.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.buckets[i]++
		}
	}
}

type histogramSnapshot struct {
	bounds  []float64
	buckets []uint64
	sum     float64
	count   uint64
}

func (h *histogram) snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		bounds:  append([]float64(nil), h.bounds...),
		buckets: append([]uint64(nil), h.buckets...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.bounds {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.buckets[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
