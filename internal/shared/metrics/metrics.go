package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	exportsStarted   atomic.Uint64
	exportsPages     atomic.Uint64
	rasterizeRetries atomic.Uint64
	assistFailed     atomic.Uint64

	exportsCompleted = newCounterVec("mode")
	exportsFailed    = newCounterVec("stage")

	exportDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncExportStarted counts an export that passed the credit gate.
func IncExportStarted() {
	exportsStarted.Add(1)
}

// IncExportCompleted counts a delivered export and its pages.
func IncExportCompleted(pages int, mode string) {
	exportsCompleted.Inc(mode)
	if pages > 0 {
		exportsPages.Add(uint64(pages))
	}
}

// IncExportFailed counts a failed export by the pipeline stage that failed.
func IncExportFailed(stage string) {
	exportsFailed.Inc(stage)
}

// IncRasterizeRetry counts a capture attempt that is about to be retried.
func IncRasterizeRetry() {
	rasterizeRetries.Add(1)
}

// IncAssistFailed counts text generation calls that left the document unchanged.
func IncAssistFailed() {
	assistFailed.Add(1)
}

// ObserveExportDurationMs records an export duration in milliseconds.
func ObserveExportDurationMs(value float64) {
	exportDuration.Observe(max(value, 0))
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// Handler serves Render as Prometheus text.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(Render()))
	}
}

// Render writes every metric in Prometheus text exposition format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "exports_started_total", "Exports that passed the credit gate.", exportsStarted.Load())
	exportsCompleted.write(&buf, "exports_completed_total", "Exports delivered, by delivery mode.")
	exportsFailed.write(&buf, "exports_failed_total", "Exports that failed, by pipeline stage.")
	writeCounter(&buf, "export_pages_total", "PDF pages produced.", exportsPages.Load())
	writeCounter(&buf, "rasterize_retries_total", "Capture attempts retried after a failure.", rasterizeRetries.Load())
	writeCounter(&buf, "assist_failed_total", "Text generation calls that failed.", assistFailed.Load())
	exportDuration.write(&buf, "export_duration_ms", "Export duration in milliseconds.")
	return buf.String()
}

type counterVec struct {
	label  string
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec(label string) *counterVec {
	return &counterVec{label: label, values: map[string]uint64{}}
}

func (v *counterVec) Inc(value string) {
	if value == "" {
		value = "unknown"
	}
	v.mu.Lock()
	v.values[value]++
	v.mu.Unlock()
}

func (v *counterVec) write(buf *bytes.Buffer, name, help string) {
	v.mu.Lock()
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts := make([]uint64, len(keys))
	for i, k := range keys {
		counts[i] = v.values[k]
	}
	v.mu.Unlock()

	writeHeader(buf, name, help, "counter")
	for i, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, v.label, k, counts[i])
	}
}

type histogram struct {
	mu      sync.Mutex
	bounds  []float64
	buckets []uint64
	sum     float64
	count   uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{bounds: bounds, buckets: make([]uint64, len(bounds))}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	if i := sort.SearchFloat64s(h.bounds, value); i < len(h.bounds) {
		h.buckets[i]++
	}
}

// write emits cumulative buckets.
func (h *histogram) write(buf *bytes.Buffer, name, help string) {
	h.mu.Lock()
	buckets := append([]uint64(nil), h.buckets...)
	sum, count := h.sum, h.count
	h.mu.Unlock()

	writeHeader(buf, name, help, "histogram")
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += buckets[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, count)
}

func writeHeader(buf *bytes.Buffer, name, help, kind string) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	writeHeader(buf, name, help, "counter")
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
