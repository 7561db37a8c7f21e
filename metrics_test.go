package semmapper

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_Basic(t *testing.T) {
	m := NewMetrics()

	if s := m.Snapshot(); s.InvocationsTotal != 0 {
		t.Errorf("InvocationsTotal = %d; want 0", s.InvocationsTotal)
	}

	m.RecordInvocation(100*time.Millisecond, true)
	m.RecordInvocation(200*time.Millisecond, false)

	s := m.Snapshot()
	if s.InvocationsTotal != 2 {
		t.Errorf("InvocationsTotal = %d; want 2", s.InvocationsTotal)
	}
	if s.InvocationsFailed != 1 {
		t.Errorf("InvocationsFailed = %d; want 1", s.InvocationsFailed)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	if s := m.Snapshot(); s.InvocationTimeMin != 0 || s.InvocationTimeMax != 0 || s.InvocationTimeAvg != 0 {
		t.Errorf("empty metrics report nonzero timing: %+v", s)
	}

	m.RecordInvocation(100*time.Millisecond, true)
	m.RecordInvocation(300*time.Millisecond, true)

	s := m.Snapshot()
	if s.InvocationTimeMin != 100*time.Millisecond {
		t.Errorf("InvocationTimeMin = %v; want 100ms", s.InvocationTimeMin)
	}
	if s.InvocationTimeMax != 300*time.Millisecond {
		t.Errorf("InvocationTimeMax = %v; want 300ms", s.InvocationTimeMax)
	}
	if s.InvocationTimeAvg != 200*time.Millisecond {
		t.Errorf("InvocationTimeAvg = %v; want 200ms", s.InvocationTimeAvg)
	}
	if s.InvocationTimeTotal != 400*time.Millisecond {
		t.Errorf("InvocationTimeTotal = %v; want 400ms", s.InvocationTimeTotal)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordBuildFailure()
	m.RecordDescriptionFetch()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordFanOut(3)
	m.RecordFanOut(0)

	s := m.Snapshot()
	if s.BuildFailures != 1 {
		t.Errorf("BuildFailures = %d; want 1", s.BuildFailures)
	}
	if s.DescriptionFetches != 1 {
		t.Errorf("DescriptionFetches = %d; want 1", s.DescriptionFetches)
	}
	if s.CacheHits != 2 || s.CacheMisses != 1 {
		t.Errorf("cache counters = %d/%d; want 2/1", s.CacheHits, s.CacheMisses)
	}
	if s.FanOuts != 2 {
		t.Errorf("FanOuts = %d; want 2", s.FanOuts)
	}
	if s.FanOutValues != 3 {
		t.Errorf("FanOutValues = %d; want 3", s.FanOutValues)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordInvocation(100*time.Millisecond, false)
	m.RecordBuildFailure()
	m.Reset()

	s := m.Snapshot()
	if s.InvocationsTotal != 0 || s.BuildFailures != 0 || s.InvocationTimeMin != 0 {
		t.Errorf("Reset left counters: %+v", s)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordInvocation(time.Duration(j)*time.Microsecond, j%2 == 0)
				m.RecordCacheHit()
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.InvocationsTotal != 1000 {
		t.Errorf("InvocationsTotal = %d; want 1000", s.InvocationsTotal)
	}
	if s.CacheHits != 1000 {
		t.Errorf("CacheHits = %d; want 1000", s.CacheHits)
	}
	if s.InvocationsFailed != 500 {
		t.Errorf("InvocationsFailed = %d; want 500", s.InvocationsFailed)
	}
}
