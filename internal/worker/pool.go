// Package worker parses test files in parallel. Each file is parsed start to
// finish by one worker with a parser of its own.
package worker

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// WorkItem names one test file.
type WorkItem struct {
	Path  string
	Index int // Position of Path in the caller's list
}

// ProcessResult is the outcome of one file. The consumer owns Cases and
// must release or clean up each of them.
type ProcessResult struct {
	Path          string
	Index         int
	Cases         []*gamecase.Case // Cases parsed before Err, if any
	WarnedVersion bool
	Err           error
}

// ProcessFunc handles one work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc on a fixed number of goroutines.
//
// Usage: Start, Submit every item, then Close from the submitting goroutine
// while another goroutine drains Results.
type Pool struct {
	numWorkers  int
	bufferSize  int
	items       chan WorkItem
	results     chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of goroutines. Values below 1 are ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the capacity of the item and result channels.
// Values below 1 are ignored.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool with 1 worker and a buffer of 10 unless the
// options say otherwise.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.items = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	p.wg.Add(p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for item := range p.items {
		if p.IsStopped() {
			continue
		}
		p.results <- p.process(item)
	}
}

// process calls processFunc, turning a panic in a game parser into an
// error on the item's result.
func (p *Pool) process(item WorkItem) (res ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ProcessResult{
				Path:  item.Path,
				Index: item.Index,
				Err:   fmt.Errorf("%s: parser panic: %v", item.Path, r),
			}
		}
	}()
	return p.processFunc(item)
}

// Submit queues an item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.items <- item
}

// Stop makes the workers skip every item they have not started.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission, waits for the workers, then closes Results.
func (p *Pool) Close() {
	close(p.items)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel results are delivered on, in completion order.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
