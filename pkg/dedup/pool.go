package dedup

import (
	"context"
	"sync"
)

// Job is a unit of work submitted to the workerPool.
type Job func(ctx context.Context)

// workerPool runs jobs on a fixed number of goroutines. It parallelizes
// the pairwise comparison scan: each job owns one row of the comparison
// matrix, so jobs never share mutable state and need no locking.
type workerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	closeMu sync.Mutex
	closed  bool
}

func newWorkerPool(workers, queue int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &workerPool{
		jobs:    make(chan Job, queue),
		workers: workers,
	}
}

// start begins the worker goroutines; they run until the job channel
// is drained by close or ctx is done.
func (p *workerPool) start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					job(ctx)
				}
			}
		}()
	}
}

// submit enqueues a job. Returns false if the pool is closed.
func (p *workerPool) submit(job Job) bool {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return false
	}
	p.jobs <- job
	return true
}

// close stops accepting jobs and waits for the workers to finish.
func (p *workerPool) close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
}
