package workerpool

import (
	"sync"
)

// Job is a unit of work run by a Pool.
type Job func() error

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	m       sync.Mutex
	cond    *sync.Cond
	queue   []Job
	stopped bool
	err     error

	pending sync.WaitGroup
	workers sync.WaitGroup
}

// New starts a pool with n workers, n < 1 is treated as 1. Call Stop to
// release the workers once the pool is no longer needed.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.m)
	p.workers.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

// Add enqueues jobs. Jobs added after Stop are discarded.
func (p *Pool) Add(jobs []Job) {
	p.m.Lock()
	defer p.m.Unlock()
	if p.stopped {
		return
	}
	p.pending.Add(len(jobs))
	p.queue = append(p.queue, jobs...)
	p.cond.Broadcast()
}

// Wait blocks until every queued job has run or been discarded, and returns the
// first error returned by a job.
func (p *Pool) Wait() error {
	p.pending.Wait()
	p.m.Lock()
	defer p.m.Unlock()
	return p.err
}

// Stop discards queued jobs and shuts the workers down once running jobs return.
func (p *Pool) Stop() {
	p.m.Lock()
	if !p.stopped {
		p.stopped = true
		p.pending.Add(-len(p.queue))
		p.queue = nil
		p.cond.Broadcast()
	}
	p.m.Unlock()
	p.workers.Wait()
}

func (p *Pool) work() {
	defer p.workers.Done()
	for {
		p.m.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.m.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.m.Unlock()

		err := job()

		p.m.Lock()
		if err != nil && p.err == nil {
			p.err = err
		}
		p.m.Unlock()
		p.pending.Done()
	}
}
