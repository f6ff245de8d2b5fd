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
	composeStartedTotal       atomic.Uint64
	composeCompletedTotal     atomic.Uint64
	composeFailedTotal        atomic.Uint64
	composePersistFailedTotal atomic.Uint64

	jobDescriptionsIngestedTotal atomic.Uint64
	jobDescriptionsRejectedTotal atomic.Uint64

	composeDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncComposeStarted increments the started counter.
func IncComposeStarted() {
	composeStartedTotal.Add(1)
}

// IncComposeCompleted increments the completed counter.
func IncComposeCompleted() {
	composeCompletedTotal.Add(1)
}

// IncComposeFailed increments the failed counter.
func IncComposeFailed() {
	composeFailedTotal.Add(1)
}

// IncComposePersistFailed counts generated content that could not be saved.
func IncComposePersistFailed() {
	composePersistFailedTotal.Add(1)
}

// IncJobDescriptionIngested counts persisted job descriptions.
func IncJobDescriptionIngested() {
	jobDescriptionsIngestedTotal.Add(1)
}

// IncJobDescriptionRejected counts ingestion requests rejected by validation or extraction.
func IncJobDescriptionRejected() {
	jobDescriptionsRejectedTotal.Add(1)
}

// ObserveComposeDurationMs records a composition duration in milliseconds.
func ObserveComposeDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	composeDuration.Observe(value)
}

// ComposePersistFailed returns the current persist failure count.
func ComposePersistFailed() uint64 {
	return composePersistFailedTotal.Load()
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
	writeCounter(&buf, "compose_started_total", "Total compositions started", composeStartedTotal.Load())
	writeCounter(&buf, "compose_completed_total", "Total compositions completed", composeCompletedTotal.Load())
	writeCounter(&buf, "compose_failed_total", "Total compositions failed", composeFailedTotal.Load())
	writeCounter(&buf, "compose_persist_failed_total", "Generated resumes returned but not saved", composePersistFailedTotal.Load())
	writeCounter(&buf, "job_descriptions_ingested_total", "Total job descriptions ingested", jobDescriptionsIngestedTotal.Load())
	writeCounter(&buf, "job_descriptions_rejected_total", "Total job description uploads rejected", jobDescriptionsRejectedTotal.Load())
	writeHistogram(&buf, "compose_duration_ms", "Composition duration in milliseconds", composeDuration.Snapshot())
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
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
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

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
