// Package worker provides a worker pool for streaming parallel
// invocation of semantic operations.
//
// Where engine.InvokeBatch takes a fixed slice and returns positional
// results, the pool accepts jobs as they arrive and delivers results on
// a channel, which suits long-running feeds of invocations.
//
// Example usage:
//
//	pool := worker.NewPool(inv, 4)
//
//	go func() {
//	    for _, call := range calls {
//	        pool.Submit(worker.Job{ID: call.ID, Invocation: call.Invocation})
//	    }
//	}()
//
//	for result := range pool.Results() {
//	    ...
//	}
package worker
