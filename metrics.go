package semmapper

import (
	"sync/atomic"
	"time"
)

// Metrics tracks invocation statistics using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	invocationsTotal  atomic.Uint64
	invocationsFailed atomic.Uint64

	// Build failures are raised before any transport call.
	buildFailures atomic.Uint64

	// Timing, stored as nanoseconds.
	invocationTimeTotal atomic.Uint64
	invocationTimeMin   atomic.Uint64
	invocationTimeMax   atomic.Uint64

	descriptionFetches atomic.Uint64
	cacheHits          atomic.Uint64
	cacheMisses        atomic.Uint64

	// Fan-out widths observed while extracting response values.
	fanOuts      atomic.Uint64
	fanOutValues atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so the first sample becomes the minimum.
	m.invocationTimeMin.Store(^uint64(0))
	return m
}

// RecordInvocation records a completed operation invocation.
func (m *Metrics) RecordInvocation(duration time.Duration, ok bool) {
	m.invocationsTotal.Add(1)
	if !ok {
		m.invocationsFailed.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.invocationTimeTotal.Add(ns)

	for {
		old := m.invocationTimeMin.Load()
		if ns >= old || m.invocationTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.invocationTimeMax.Load()
		if ns <= old || m.invocationTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordBuildFailure records a request build rejected before transport.
func (m *Metrics) RecordBuildFailure() {
	m.buildFailures.Add(1)
}

// RecordDescriptionFetch records a description retrieved from its source.
func (m *Metrics) RecordDescriptionFetch() {
	m.descriptionFetches.Add(1)
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordFanOut records one array fan-out producing n values.
func (m *Metrics) RecordFanOut(n int) {
	m.fanOuts.Add(1)
	if n > 0 {
		m.fanOutValues.Add(uint64(n))
	}
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	InvocationsTotal  uint64
	InvocationsFailed uint64
	BuildFailures     uint64

	InvocationTimeTotal time.Duration
	InvocationTimeMin   time.Duration
	InvocationTimeMax   time.Duration
	InvocationTimeAvg   time.Duration

	DescriptionFetches uint64
	CacheHits          uint64
	CacheMisses        uint64

	FanOuts      uint64
	FanOutValues uint64
}

// Snapshot returns a consistent-enough copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		InvocationsTotal:   m.invocationsTotal.Load(),
		InvocationsFailed:  m.invocationsFailed.Load(),
		BuildFailures:      m.buildFailures.Load(),
		DescriptionFetches: m.descriptionFetches.Load(),
		CacheHits:          m.cacheHits.Load(),
		CacheMisses:        m.cacheMisses.Load(),
		FanOuts:            m.fanOuts.Load(),
		FanOutValues:       m.fanOutValues.Load(),
	}

	s.InvocationTimeTotal = time.Duration(m.invocationTimeTotal.Load())
	if min := m.invocationTimeMin.Load(); min != ^uint64(0) {
		s.InvocationTimeMin = time.Duration(min)
	}
	s.InvocationTimeMax = time.Duration(m.invocationTimeMax.Load())
	if s.InvocationsTotal > 0 {
		s.InvocationTimeAvg = s.InvocationTimeTotal / time.Duration(s.InvocationsTotal)
	}
	return s
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.invocationsTotal.Store(0)
	m.invocationsFailed.Store(0)
	m.buildFailures.Store(0)
	m.invocationTimeTotal.Store(0)
	m.invocationTimeMin.Store(^uint64(0))
	m.invocationTimeMax.Store(0)
	m.descriptionFetches.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.fanOuts.Store(0)
	m.fanOutValues.Store(0)
}
