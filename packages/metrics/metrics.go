// Package metrics collects per-operation statistics for a push.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/vercel"
)

// histogram range: 1us to 10m, 3 significant digits
const (
	minLatencyUs = 1
	maxLatencyUs = int64(10 * time.Minute / time.Microsecond)
)

// Metrics implements vercel.Observer and aggregates operation results
type Metrics struct {
	mu sync.Mutex

	// Counters
	removed atomic.Int64
	added   atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64

	// Latency in microseconds
	histogram *hdrhistogram.Histogram

	startTime time.Time
	endTime   time.Time
}

// New creates a Metrics collector
func New() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(minLatencyUs, maxLatencyUs, 3),
	}
}

// Start marks the beginning of the push
func (m *Metrics) Start() {
	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Stop marks the end of the push
func (m *Metrics) Stop() {
	m.mu.Lock()
	m.endTime = time.Now()
	m.mu.Unlock()
}

func (m *Metrics) PhaseStarted(vercel.OperationKind, int) {}

func (m *Metrics) OperationStarted(vercel.Operation) {}

func (m *Metrics) OperationFinished(op vercel.Operation, outcome vercel.Outcome, duration time.Duration, _ error) {
	switch outcome {
	case vercel.OutcomeFailed:
		m.failed.Add(1)
	case vercel.OutcomeSkipped:
		m.skipped.Add(1)
	case vercel.OutcomeSucceeded:
		if op.Kind == vercel.OperationRemove {
			m.removed.Add(1)
		} else {
			m.added.Add(1)
		}
	}

	// operations rejected before dispatch have no latency
	if duration <= 0 {
		return
	}

	latencyUs := duration.Microseconds()
	if latencyUs < minLatencyUs {
		latencyUs = minLatencyUs
	}
	if latencyUs > maxLatencyUs {
		latencyUs = maxLatencyUs
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// Summary is the final view of a push
type Summary struct {
	Duration time.Duration
	Removed  int64
	Added    int64
	// Skipped counts removals of variables that did not exist remotely
	Skipped int64
	Failed  int64

	P50  time.Duration
	P95  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// Total returns the number of settled operations
func (s Summary) Total() int64 {
	return s.Removed + s.Added + s.Skipped + s.Failed
}

// GetSummary returns the metrics summary
func (m *Metrics) GetSummary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}
	if m.startTime.IsZero() {
		duration = 0
	}

	return Summary{
		Duration: duration,
		Removed:  m.removed.Load(),
		Added:    m.added.Load(),
		Skipped:  m.skipped.Load(),
		Failed:   m.failed.Load(),
		P50:      time.Duration(m.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:      time.Duration(m.histogram.ValueAtQuantile(95)) * time.Microsecond,
		Max:      time.Duration(m.histogram.Max()) * time.Microsecond,
		Mean:     time.Duration(m.histogram.Mean()) * time.Microsecond,
	}
}
