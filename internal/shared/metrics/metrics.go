package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	insightStartedTotal   atomic.Uint64
	insightCompletedTotal atomic.Uint64
	insightFailedTotal    atomic.Uint64
	transcriptFetchTotal  atomic.Uint64

	jobsReceivedTotal             atomic.Uint64
	jobsCompletedTotal            atomic.Uint64
	jobsFailedTotal               atomic.Uint64
	jobsDeletedUnrecoverableTotal atomic.Uint64

	insightDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncInsightStarted increments the started counter.
func IncInsightStarted() {
	insightStartedTotal.Add(1)
}

// IncInsightCompleted increments the completed counter.
func IncInsightCompleted() {
	insightCompletedTotal.Add(1)
}

// IncInsightFailed increments the failed counter.
func IncInsightFailed() {
	insightFailedTotal.Add(1)
}

// IncTranscriptFetch increments the transcript fetch counter.
func IncTranscriptFetch() {
	transcriptFetchTotal.Add(1)
}

// IncInsightJobsReceived increments the worker received counter.
func IncInsightJobsReceived() {
	jobsReceivedTotal.Add(1)
}

// IncInsightJobsCompleted increments the worker completed counter.
func IncInsightJobsCompleted() {
	jobsCompletedTotal.Add(1)
}

// IncInsightJobsFailed increments the worker failed counter.
func IncInsightJobsFailed() {
	jobsFailedTotal.Add(1)
}

// IncInsightJobsDeletedUnrecoverable increments the counter for poison messages dropped.
func IncInsightJobsDeletedUnrecoverable() {
	jobsDeletedUnrecoverableTotal.Add(1)
}

// ObserveInsightDurationMs records an analysis duration in milliseconds.
func ObserveInsightDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	insightDuration.Observe(value)
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
	writeCounter(&buf, "insight_started_total", "Total transcript analyses started", insightStartedTotal.Load())
	writeCounter(&buf, "insight_completed_total", "Total transcript analyses completed", insightCompletedTotal.Load())
	writeCounter(&buf, "insight_failed_total", "Total transcript analyses failed", insightFailedTotal.Load())
	writeCounter(&buf, "transcript_fetch_total", "Total remote transcript fetches", transcriptFetchTotal.Load())
	writeCounter(&buf, "insight_jobs_received_total", "Total queue jobs received", jobsReceivedTotal.Load())
	writeCounter(&buf, "insight_jobs_completed_total", "Total queue jobs completed", jobsCompletedTotal.Load())
	writeCounter(&buf, "insight_jobs_failed_total", "Total queue jobs failed", jobsFailedTotal.Load())
	writeCounter(&buf, "insight_jobs_deleted_unrecoverable_total", "Total poison queue jobs dropped", jobsDeletedUnrecoverableTotal.Load())
	writeHistogram(&buf, "insight_duration_ms", "Transcript analysis duration in milliseconds", insightDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
