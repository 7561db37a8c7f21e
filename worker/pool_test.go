package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semprofile/mapper/engine"
)

// stubInvoker answers from a fixed table keyed by operation id.
type stubInvoker struct {
	mu      sync.Mutex
	calls   int
	outputs map[string]map[string]any
}

func (s *stubInvoker) Invoke(_ context.Context, inv engine.Invocation) (map[string]any, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	out, ok := s.outputs[inv.Operation]
	if !ok {
		return nil, errors.New("unknown operation")
	}
	return out, nil
}

func TestPoolProcessesJobs(t *testing.T) {
	inv := &stubInvoker{outputs: map[string]map[string]any{
		"commerce#SearchCompany": {"Name": "ACME"},
	}}
	pool := NewPool(inv, 3)

	const n = 20
	go func() {
		for i := 0; i < n; i++ {
			ok := pool.Submit(Job{
				ID:         fmt.Sprintf("job-%d", i),
				Invocation: engine.Invocation{Operation: "commerce#SearchCompany"},
			})
			assert.True(t, ok)
		}
	}()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		result := <-pool.Results()
		require.NoError(t, result.Error)
		assert.Equal(t, "ACME", result.Output["Name"])
		seen[result.ID] = true
	}
	assert.Len(t, seen, n, "every job id must be echoed exactly once")

	pool.Close()

	stats := pool.Stats()
	assert.Equal(t, 3, stats.Workers)
	assert.Equal(t, uint64(n), stats.JobsSubmitted)
	assert.Equal(t, uint64(n), stats.JobsCompleted)
	assert.Equal(t, uint64(0), stats.JobsFailed)
}

func TestPoolCloseAndWait(t *testing.T) {
	inv := &stubInvoker{outputs: map[string]map[string]any{
		"p#Get": {"V": 1},
	}}
	pool := NewPool(inv, 2)

	for i := 0; i < 5; i++ {
		require.True(t, pool.Submit(Job{ID: fmt.Sprintf("j%d", i), Invocation: engine.Invocation{Operation: "p#Get"}}))
	}
	// One failing job mixed in.
	require.True(t, pool.Submit(Job{ID: "bad", Invocation: engine.Invocation{Operation: "p#Nope"}}))

	results := pool.CloseAndWait()
	require.Len(t, results, 6)

	var failed int
	for _, r := range results {
		if r.Error != nil {
			failed++
			assert.Equal(t, "bad", r.ID)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, uint64(1), pool.Stats().JobsFailed)
}

func TestPoolRejectsAfterClose(t *testing.T) {
	pool := NewPool(&stubInvoker{}, 1)
	pool.Close()

	assert.False(t, pool.Submit(Job{ID: "late"}))
	assert.False(t, pool.SubmitAsync(Job{ID: "late"}))
}

func TestPoolNoInvoker(t *testing.T) {
	pool := NewPool(nil, 1)
	require.True(t, pool.Submit(Job{ID: "j"}))

	result := <-pool.Results()
	assert.ErrorIs(t, result.Error, ErrNoInvoker)
	pool.Close()
}

func TestPoolDefaultWorkerCount(t *testing.T) {
	pool := NewPool(&stubInvoker{}, 0)
	defer pool.Close()
	assert.Greater(t, pool.Stats().Workers, 0)
}
