// Package engine provides the main invocation engine.
//
// The Invoker ties the feature packages together: it fetches the API
// description, locates the operation annotated with the requested
// semantic id, builds the outbound request, performs it, and normalizes
// the success response into a semantic property map.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	sm "github.com/semprofile/mapper"
	"github.com/semprofile/mapper/cache"
	"github.com/semprofile/mapper/credentials"
	"github.com/semprofile/mapper/document"
	"github.com/semprofile/mapper/normalize"
	"github.com/semprofile/mapper/pkg/logger"
	"github.com/semprofile/mapper/registry"
	"github.com/semprofile/mapper/resolve"
	"github.com/semprofile/mapper/semantic"
	"github.com/semprofile/mapper/transport"
	"github.com/semprofile/mapper/walker"
)

// Invocation names one operation call in profile terms.
type Invocation struct {
	// Description is the URL of the API description to invoke against.
	Description string

	// Operation is the qualified operation id, {profile}#{affordance}.
	Operation string

	// Inputs maps parameter names, bare or fully qualified, to values.
	Inputs map[string]any

	// Requested lists the response property names to map back out.
	Requested []string
}

// Invoker is the main semantic operation invoker.
// It coordinates description resolution, request building, transport and
// response normalization.
type Invoker struct {
	options *sm.Options

	source    registry.Source
	transport transport.Transport
	creds     *credentials.Store

	// scans memoizes response schema scans per description operation.
	scans *cache.LRU[string, []walker.Mapping]

	metrics *sm.Metrics
	log     *logger.Logger

	// Worker pool for batch invocation.
	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates an Invoker over a description source, a transport and a
// credential store. The source is wrapped with an in-process document
// cache; pass nil creds to invoke without credentials.
func New(source registry.Source, tr transport.Transport, creds *credentials.Store, opts ...sm.Option) *Invoker {
	options := sm.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	log := logger.Default()
	log.SetLevel(logger.ParseLevel(options.LogLevel))

	return &Invoker{
		options:   options,
		source:    registry.NewCaching(source, options.DocumentCacheSize),
		transport: tr,
		creds:     creds,
		scans:     cache.New[string, []walker.Mapping](options.ScanCacheSize),
		metrics:   sm.NewMetrics(),
		log:       log,
	}
}

// Invoke performs one semantic operation call and returns the requested
// response properties keyed by their unqualified names.
func (i *Invoker) Invoke(ctx context.Context, inv Invocation) (map[string]any, error) {
	start := time.Now()

	out, err := i.invoke(ctx, inv)
	i.metrics.RecordInvocation(time.Since(start), err == nil)
	return out, err
}

func (i *Invoker) invoke(ctx context.Context, inv Invocation) (map[string]any, error) {
	q, err := semantic.Parse(inv.Operation)
	if err != nil {
		return nil, fmt.Errorf("operation id: %w", err)
	}

	doc, err := i.description(ctx, inv.Description)
	if err != nil {
		return nil, err
	}

	ep, ok := doc.FindAffordance(q.Operation())
	if !ok {
		return nil, fmt.Errorf("operation %s in %s: %w", q.Operation(), inv.Description, sm.ErrNotFound)
	}
	i.log.Debug("located %s as %s %s", q.Operation(), ep.Method, ep.Path)

	req, err := resolve.BuildRequest(doc, ep, q.Operation(), inv.Inputs, i.creds)
	if err != nil {
		i.metrics.RecordBuildFailure()
		return nil, err
	}

	if i.options.HTTPTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.options.HTTPTimeout)
		defer cancel()
	}
	if i.options.UserAgent != "" {
		req.Header.Set("User-Agent", i.options.UserAgent)
	}

	res, err := i.transport.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", q.Operation(), err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("invoke %s: status %d", q.Operation(), res.StatusCode)
	}
	i.log.Dump("response payload", res.Body)

	mappings := i.responseMappings(inv.Description, q.Operation(), ep.Op)
	out := normalize.Mapped(mappings, res.Body, inv.Requested, q.Operation())

	for _, v := range out {
		if arr, ok := v.([]any); ok {
			i.metrics.RecordFanOut(len(arr))
		}
	}
	return out, nil
}

// description resolves a description URL through the cached source.
func (i *Invoker) description(ctx context.Context, url string) (*document.Document, error) {
	doc, err := i.source.Description(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("description %s: %w", url, err)
	}
	i.metrics.RecordDescriptionFetch()
	return doc, nil
}

// responseMappings scans the operation's success response schema,
// memoizing the scan per description and operation.
func (i *Invoker) responseMappings(descURL string, q semantic.QualifiedID, op *document.Operation) []walker.Mapping {
	key := descURL + "|" + q.String()
	if mappings, ok := i.scans.Get(key); ok {
		i.metrics.RecordCacheHit()
		return mappings
	}
	i.metrics.RecordCacheMiss()

	var mappings []walker.Mapping
	if resp, ok := op.SuccessResponse(); ok {
		if mt, ok := resp.Content.First(resolve.MediaJSON, resolve.MediaForm); ok && mt.Schema != nil {
			mappings = walker.Scan(mt.Schema)
		}
	}

	i.scans.Set(key, mappings)
	return mappings
}

// BatchResult is the outcome of one invocation in a batch.
type BatchResult struct {
	Output map[string]any
	Err    error
}

// InvokeBatch performs multiple invocations in parallel, bounded by the
// configured worker count. Results are positional.
func (i *Invoker) InvokeBatch(ctx context.Context, invs []Invocation) []BatchResult {
	results := make([]BatchResult, len(invs))

	i.workerPoolOnce.Do(func() {
		workers := i.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		i.workerPool = make(chan struct{}, workers)
	})

	var wg sync.WaitGroup
	for idx, inv := range invs {
		wg.Add(1)
		go func(idx int, inv Invocation) {
			defer wg.Done()

			i.workerPool <- struct{}{}
			defer func() { <-i.workerPool }()

			out, err := i.Invoke(ctx, inv)
			results[idx] = BatchResult{Output: out, Err: err}
		}(idx, inv)
	}

	wg.Wait()
	return results
}

// Metrics returns the invoker's metrics.
func (i *Invoker) Metrics() *sm.Metrics {
	return i.metrics
}

// Options returns the invoker's options.
func (i *Invoker) Options() *sm.Options {
	return i.options
}
